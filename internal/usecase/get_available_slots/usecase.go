package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/internal/infra/cache/availability"
	catalogClient "github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
	"github.com/m04kA/SMC-ReservationEngine/internal/slots"
	"github.com/m04kA/SMC-ReservationEngine/pkg/ptr"
	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

// reasonPastDate причина пустого ответа для прошедшей даты
const reasonPastDate = "date is in the past"

// UseCase use case для получения доступных слотов
type UseCase struct {
	catalog      CatalogClient
	hours        HoursResolver
	repo         ReservationRepository
	cache        AvailabilityCache
	metrics      Metrics
	rules        slots.Rules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; cache может быть nil
func NewUseCase(
	catalog CatalogClient,
	hours HoursResolver,
	repo ReservationRepository,
	cache AvailabilityCache,
	metrics Metrics,
	rules slots.Rules,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		hours:        hours,
		repo:         repo,
		cache:        cache,
		metrics:      metrics,
		rules:        rules,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute рассчитывает свободные слоты на дату для услуги.
// Чтение без блокировок: окончательная проверка пересечений выполняется при создании бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Длительность берётся только из каталога
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Execute - get service: %v", ErrInternal, err)
	}

	// 3. Прошедшая дата: слотов нет, базу не трогаем
	if slots.IsDateInPast(req.Date, now) {
		return &Response{
			Date:            req.Date,
			ServiceID:       req.ServiceID,
			DurationMinutes: service.DurationMinutes,
			IsClosed:        true,
			ClosedReason:    reasonPastDate,
			Slots:           []Slot{},
		}, nil
	}

	// 4. Кэш; для сегодняшней даты граница опережения движется со временем, кэш не используется
	useCache := uc.cache != nil && !slots.IsSameDay(req.Date, now)
	var generation int64
	if useCache {
		if resp, ok := uc.fromCache(ctx, req, service.DurationMinutes); ok {
			return resp, nil
		}

		// Поколение читается до расчёта: инвалидация во время расчёта отменит запись в кэш
		generation, err = uc.cache.Generation(ctx, req.Date)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: failed to read cache generation: %v", err)
			useCache = false
		}
	}

	// 5. Часы работы
	hours, err := uc.hours.Resolve(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve hours: %v", err)
		return nil, fmt.Errorf("%w: Execute - resolve hours: %v", ErrInternal, err)
	}

	// 6. Кандидаты на сетке с учётом опережения
	candidates, err := slots.Generate(req.Date, service.DurationMinutes, hours, now, uc.rules)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: Execute - generate: %v", ErrInternal, err)
	}

	// 7. Исключаем пересечения с подтверждёнными бронированиями
	free := candidates
	if len(candidates) > 0 {
		reservations, err := uc.repo.ListByDate(ctx, domain.ReservationFilter{Date: req.Date})
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list reservations: %v", err)
			return nil, fmt.Errorf("%w: Execute - list reservations: %v", ErrInternal, err)
		}
		free = slots.FilterAvailable(candidates, reservations)
	}

	resp := buildResponse(req, service.DurationMinutes, hours, free)
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, candidates=%d, available=%d",
		req.ServiceID, req.Date.Format(domain.DateFormat), len(candidates), len(free))

	if useCache {
		err := uc.cache.Set(ctx, req.Date, req.ServiceID, generation, toEntry(resp))
		switch {
		case err == nil:
		case errors.Is(err, availability.ErrStale):
			uc.logger.Info("GetAvailableSlots: date=%s changed during calculation, result not cached",
				req.Date.Format(domain.DateFormat))
		default:
			uc.logger.Warn("GetAvailableSlots: failed to cache result: %v", err)
		}
	}

	return resp, nil
}

func (uc *UseCase) fromCache(ctx context.Context, req *Request, duration int) (*Response, bool) {
	entry, ok, err := uc.cache.Get(ctx, req.Date, req.ServiceID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cache lookup failed: %v", err)
		return nil, false
	}

	// Длительность в каталоге могла измениться
	hit := ok && entry.DurationMinutes == duration
	uc.metrics.IncCacheLookup(hit)
	if !hit {
		return nil, false
	}

	resp, err := fromEntry(req, entry)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cached entry is malformed: %v", err)
		return nil, false
	}

	return resp, true
}

func buildResponse(req *Request, duration int, hours domain.OperatingHours, free []domain.CandidateSlot) *Response {
	resp := &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: duration,
		IsClosed:        hours.IsClosed,
		ClosedReason:    hours.ClosedReason,
		Slots:           make([]Slot, 0, len(free)),
	}
	if !hours.IsClosed {
		resp.OpenTime = ptr.Ptr(hours.OpenTime)
		resp.CloseTime = ptr.Ptr(hours.CloseTime)
	}

	for _, c := range free {
		resp.Slots = append(resp.Slots, Slot{Start: c.Start, End: c.End})
	}

	return resp
}

func toEntry(resp *Response) *availability.Entry {
	entry := &availability.Entry{
		IsClosed:        resp.IsClosed,
		ClosedReason:    resp.ClosedReason,
		DurationMinutes: resp.DurationMinutes,
		Slots:           make([]availability.Slot, 0, len(resp.Slots)),
	}
	if resp.OpenTime != nil && resp.CloseTime != nil {
		entry.OpenTime = resp.OpenTime.String()
		entry.CloseTime = resp.CloseTime.String()
	}

	for _, s := range resp.Slots {
		entry.Slots = append(entry.Slots, availability.Slot{Start: s.Start.String(), End: s.End.String()})
	}

	return entry
}

func fromEntry(req *Request, entry *availability.Entry) (*Response, error) {
	resp := &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: entry.DurationMinutes,
		IsClosed:        entry.IsClosed,
		ClosedReason:    entry.ClosedReason,
		Slots:           make([]Slot, 0, len(entry.Slots)),
	}

	if !entry.IsClosed {
		open, err := types.NewTimeStringFromString(entry.OpenTime)
		if err != nil {
			return nil, err
		}
		closeAt, err := types.NewTimeStringFromString(entry.CloseTime)
		if err != nil {
			return nil, err
		}
		resp.OpenTime = &open
		resp.CloseTime = &closeAt
	}

	for _, s := range entry.Slots {
		start, err := types.NewTimeStringFromString(s.Start)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(s.End)
		if err != nil {
			return nil, err
		}
		resp.Slots = append(resp.Slots, Slot{Start: start, End: end})
	}

	return resp, nil
}
