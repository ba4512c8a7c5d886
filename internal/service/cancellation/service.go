package cancellation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationEngine/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationEngine/pkg/credential"
)

// Исходы отмены для метрик
const (
	OutcomeCancelled        = "cancelled"
	OutcomeAlreadyCancelled = "already_cancelled"
	OutcomeNotFound         = "not_found"
	OutcomeRejected         = "rejected"
	OutcomeFailed           = "failed"
)

// Service единственный источник перехода confirmed -> cancelled
type Service struct {
	repo         ReservationRepository
	catalog      CatalogClient
	notifier     Notifier
	cache        AvailabilityCache
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса отмены; cache может быть nil
func NewService(
	repo ReservationRepository,
	catalog CatalogClient,
	notifier Notifier,
	cache AvailabilityCache,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		catalog:      catalog,
		notifier:     notifier,
		cache:        cache,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Resolve возвращает сводку бронирования по plaintext credential
func (s *Service) Resolve(ctx context.Context, token string) (*domain.ReservationSummary, error) {
	res, err := s.lookup(ctx, "Resolve", token)
	if err != nil {
		return nil, err
	}

	summary := s.summarize(ctx, res)
	return &summary, nil
}

// Cancel отменяет бронирование по credential. Причина обрезается, пустая превращается в nil.
// Повторный вызов с тем же credential возвращает ErrNotFound и уведомление не отправляет.
func (s *Service) Cancel(ctx context.Context, token string, reason *string) (*domain.ReservationSummary, error) {
	reason, err := normalizeReason(reason)
	if err != nil {
		s.metrics.IncCancellation(OutcomeRejected)
		return nil, err
	}

	res, err := s.lookup(ctx, "Cancel", token)
	if err != nil {
		s.countFailure(err)
		return nil, err
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d has status=%s", res.ID, res.Status)
		s.metrics.IncCancellation(OutcomeAlreadyCancelled)
		return nil, ErrAlreadyCancelled
	}

	hash, _ := res.Credential.Hash()
	cancelled, err := s.repo.CancelByTokenHash(ctx, hash, reason, s.timeProvider.Now())
	if errors.Is(err, reservationRepo.ErrNotCancellable) {
		// Параллельная отмена успела раньше и обнулила хэш
		s.logger.Warn("Cancel: reservation id=%d was cancelled concurrently", res.ID)
		s.metrics.IncCancellation(OutcomeNotFound)
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("Cancel: failed to cancel reservation id=%d: %v", res.ID, err)
		s.metrics.IncCancellation(OutcomeFailed)
		return nil, fmt.Errorf("%w: Cancel - update: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: reservation id=%d cancelled, date=%s, time=%s-%s",
		cancelled.ID, cancelled.Date.Format(domain.DateFormat), cancelled.StartTime, cancelled.EndTime)
	s.metrics.IncCancellation(OutcomeCancelled)

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, cancelled.Date); err != nil {
			s.logger.Warn("Cancel: cache invalidation failed for date=%s: %v", cancelled.Date.Format(domain.DateFormat), err)
		}
	}

	summary := s.summarize(ctx, cancelled)

	// Отмена уже зафиксирована; отключение клиента не должно обрывать уведомление
	if err := s.notifier.NotifyCancelled(context.WithoutCancel(ctx), summary); err != nil {
		s.logger.Warn("Cancel: notification failed for reservation id=%d: %v", cancelled.ID, err)
	}

	return &summary, nil
}

func (s *Service) lookup(ctx context.Context, op, token string) (*domain.Reservation, error) {
	if !credential.LooksValid(token) {
		s.logger.Warn("%s: malformed credential", op)
		return nil, ErrNotFound
	}

	res, err := s.repo.GetByTokenHash(ctx, credential.Hash(token))
	if errors.Is(err, reservationRepo.ErrReservationNotFound) {
		s.logger.Warn("%s: credential does not match any reservation", op)
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("%s: lookup failed: %v", op, err)
		return nil, fmt.Errorf("%w: %s - lookup: %v", ErrInternal, op, err)
	}

	return res, nil
}

// summarize добавляет название услуги; недоступность каталога не мешает отмене
func (s *Service) summarize(ctx context.Context, res *domain.Reservation) domain.ReservationSummary {
	summary := res.Summary()

	service, err := s.catalog.GetService(ctx, res.ServiceID)
	if err != nil {
		s.logger.Warn("summarize: service name unavailable for service=%d: %v", res.ServiceID, err)
		return summary
	}

	summary.ServiceName = service.Name
	return summary
}

func (s *Service) countFailure(err error) {
	if errors.Is(err, ErrNotFound) {
		s.metrics.IncCancellation(OutcomeNotFound)
		return
	}
	s.metrics.IncCancellation(OutcomeFailed)
}

func normalizeReason(reason *string) (*string, error) {
	if reason == nil {
		return nil, nil
	}

	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	return &trimmed, nil
}
