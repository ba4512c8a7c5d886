package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	catalogClient "github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
	"github.com/m04kA/SMC-ReservationEngine/internal/slots"
	"github.com/m04kA/SMC-ReservationEngine/pkg/txmanager"
)

// Исходы создания для метрик
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// UseCase use case для создания бронирования
type UseCase struct {
	repo         ReservationRepository
	catalog      CatalogClient
	hours        HoursResolver
	credentials  CredentialGenerator
	notifier     Notifier
	cache        AvailabilityCache
	metrics      Metrics
	txManager    TransactionManager
	rules        slots.Rules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; cache может быть nil
func NewUseCase(
	repo ReservationRepository,
	catalog CatalogClient,
	hours HoursResolver,
	credentials CredentialGenerator,
	notifier Notifier,
	cache AvailabilityCache,
	metrics Metrics,
	txManager TransactionManager,
	rules slots.Rules,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:         repo,
		catalog:      catalog,
		hours:        hours,
		credentials:  credentials,
		notifier:     notifier,
		cache:        cache,
		metrics:      metrics,
		txManager:    txManager,
		rules:        rules,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Вся валидация выполняется до транзакции; в транзакции только блокировка даты,
// повторная проверка пересечений и вставка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: service=%d, date=%s, time=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	resp, outcome, err := uc.execute(ctx, req)
	uc.metrics.IncReservation(outcome)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, string, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, OutcomeRejected, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата не в прошлом
	if slots.IsDateInPast(req.Date, now) {
		uc.logger.Warn("CreateReservation: date=%s is in the past", req.Date.Format(domain.DateFormat))
		return nil, OutcomeRejected, ErrInvalidDate
	}

	// 3. Услуга и её длительность
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: service id=%d not found", req.ServiceID)
			return nil, OutcomeRejected, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, OutcomeFailed, fmt.Errorf("%w: Execute - get service: %v", ErrInternal, err)
	}

	// 4. Часы работы
	hours, err := uc.hours.Resolve(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to resolve hours: %v", err)
		return nil, OutcomeFailed, fmt.Errorf("%w: Execute - resolve hours: %v", ErrInternal, err)
	}

	// 5. Сетка, границы дня и опережение
	endTime, err := validateSlot(req.Date, req.StartTime, service.DurationMinutes, hours, now, uc.rules)
	if err != nil {
		uc.logger.Warn("CreateReservation: slot validation failed: %v", err)
		return nil, OutcomeRejected, err
	}

	// 6. Credential отмены; в базу попадает только хэш
	plainToken, tokenHash, err := uc.credentials.Generate()
	if err != nil {
		uc.logger.Error("CreateReservation: failed to generate credential: %v", err)
		return nil, OutcomeFailed, fmt.Errorf("%w: Execute - generate credential: %v", ErrInternal, err)
	}

	var created *domain.Reservation

	// 7. Блокировка даты, проверка пересечений и вставка.
	// READ COMMITTED: снимок берётся на каждый запрос, поэтому после ожидания блокировки
	// чтение видит бронирование, зафиксированное предыдущим владельцем даты.
	err = uc.txManager.DoReadCommitted(ctx, func(txCtx context.Context) error {
		if err := uc.repo.LockDate(txCtx, req.Date); err != nil {
			uc.logger.Error("CreateReservation: failed to lock date: %v", err)
			return fmt.Errorf("%w: Execute - lock date: %w", ErrInternal, err)
		}

		existing, err := uc.repo.ListByDate(txCtx, domain.ReservationFilter{Date: req.Date})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list reservations: %v", err)
			return fmt.Errorf("%w: Execute - list reservations: %w", ErrInternal, err)
		}

		if slots.HasOverlap(req.StartTime, endTime, existing) {
			uc.logger.Warn("CreateReservation: slot %s-%s on %s overlaps a confirmed reservation",
				req.StartTime, endTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		res := &domain.Reservation{
			ServiceID:     req.ServiceID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			Notes:         req.Notes,
			Date:          req.Date,
			StartTime:     req.StartTime,
			EndTime:       endTime,
			Status:        domain.StatusConfirmed,
			Credential:    domain.UnusedCredential(tokenHash),
		}

		created, err = uc.repo.Create(txCtx, res)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: Execute - create: %w", ErrInternal, err)
		}

		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrSlotNotAvailable):
		return nil, OutcomeConflict, err
	case errors.Is(err, txmanager.ErrSerialization):
		// Дедлок или таймаут блокировки не повторяется здесь; решение за вызывающей стороной
		uc.logger.Warn("CreateReservation: serialization failure: %v", err)
		return nil, OutcomeFailed, fmt.Errorf("%w: Execute - transaction: %v", ErrInternal, err)
	case errors.Is(err, ErrInternal):
		return nil, OutcomeFailed, err
	default:
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		return nil, OutcomeFailed, fmt.Errorf("%w: Execute - transaction: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, date=%s, time=%s-%s",
		created.ID, created.Date.Format(domain.DateFormat), created.StartTime, created.EndTime)

	uc.afterCommit(ctx, created, service, plainToken)

	return &Response{
		ReservationID:   created.ID,
		CancelToken:     plainToken,
		ServiceID:       created.ServiceID,
		ServiceName:     service.Name,
		Date:            created.Date,
		StartTime:       created.StartTime,
		EndTime:         created.EndTime,
		DurationMinutes: service.DurationMinutes,
		Status:          string(created.Status),
		CustomerName:    created.CustomerName,
		CreatedAt:       created.CreatedAt,
	}, OutcomeCreated, nil
}

// afterCommit побочные эффекты после фиксации; их ошибки только логируются
func (uc *UseCase) afterCommit(ctx context.Context, created *domain.Reservation, service *catalogClient.Service, plainToken string) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, created.Date); err != nil {
			uc.logger.Warn("CreateReservation: cache invalidation failed for date=%s: %v",
				created.Date.Format(domain.DateFormat), err)
		}
	}

	summary := created.Summary()
	summary.ServiceName = service.Name

	if err := uc.notifier.NotifyCreated(context.WithoutCancel(ctx), summary, plainToken); err != nil {
		uc.logger.Warn("CreateReservation: notification failed for reservation id=%d: %v", created.ID, err)
	}
}
