package businesshours

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/internal/slots"
)

const (
	minYear = 2000
	maxYear = 2100
)

// Service разрешает часы работы на дату и управляет шаблоном недели
type Service struct {
	repo        Repository
	defaultWeek domain.WeekTemplate
	loc         *time.Location
	cache       AvailabilityCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса часов работы; cache может быть nil
func NewService(
	repo Repository,
	defaultWeek domain.WeekTemplate,
	loc *time.Location,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		repo:        repo,
		defaultWeek: defaultWeek,
		loc:         loc,
		cache:       cache,
		logger:      logger,
	}
}

// Resolve возвращает часы работы на дату. При первом обращении к месяцу заполняет его шаблоном по умолчанию.
// Отсутствие записи, флаг is_closed или неразборчивое время дают закрытый день, а не ошибку.
func (s *Service) Resolve(ctx context.Context, date time.Time) (domain.OperatingHours, error) {
	date = s.dateOnly(date)

	if err := s.ensureSeeded(ctx, date.Year(), int(date.Month())); err != nil {
		return domain.OperatingHours{}, err
	}

	record, err := findRecord(ctx, s.repo, date)
	if err != nil {
		s.logger.Error("Resolve: lookup failed for date=%s: %v", date.Format(domain.DateFormat), err)
		return domain.OperatingHours{}, fmt.Errorf("%w: Resolve - lookup: %v", ErrInternal, err)
	}

	hours := toOperatingHours(date, record)
	if hours.IsClosed {
		s.logger.Info("Resolve: date=%s closed (%s)", date.Format(domain.DateFormat), hours.ClosedReason)
	}

	return hours, nil
}

// GetMonthSchedule проекция часов работы на каждый день месяца для календаря
func (s *Service) GetMonthSchedule(ctx context.Context, year, month int) ([]domain.DaySchedule, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}

	if err := s.ensureSeeded(ctx, year, month); err != nil {
		return nil, err
	}

	records, err := s.repo.ListForMonth(ctx, year, month)
	if err != nil {
		s.logger.Error("GetMonthSchedule: failed to list records for %04d-%02d: %v", year, month, err)
		return nil, fmt.Errorf("%w: GetMonthSchedule - list records: %v", ErrInternal, err)
	}

	finder := monthRecords(records)
	days := slots.DaysInMonth(year, time.Month(month), s.loc)
	schedule := make([]domain.DaySchedule, 0, len(days))

	for _, day := range days {
		record, err := findRecord(ctx, finder, day)
		if err != nil {
			return nil, fmt.Errorf("%w: GetMonthSchedule - lookup: %v", ErrInternal, err)
		}

		hours := toOperatingHours(day, record)
		entry := domain.DaySchedule{Date: day, IsClosed: hours.IsClosed}
		if !hours.IsClosed {
			open, closeAt := hours.OpenTime, hours.CloseTime
			entry.OpenTime = &open
			entry.CloseTime = &closeAt
		}
		schedule = append(schedule, entry)
	}

	return schedule, nil
}

// UpdateWeeklyTemplate административное изменение записи (год, месяц, неделя, день недели).
// Месяц сначала заполняется, иначе единственная запись отменила бы заполнение по умолчанию.
func (s *Service) UpdateWeeklyTemplate(ctx context.Context, upd domain.WeeklyTemplateUpdate) (*domain.BusinessHourRecord, error) {
	s.logger.Info("UpdateWeeklyTemplate: %04d-%02d week=%d day=%s closed=%t",
		upd.Year, upd.Month, upd.WeekOfMonth, upd.DayOfWeek, upd.IsClosed)

	if err := validateUpdate(upd); err != nil {
		s.logger.Warn("UpdateWeeklyTemplate: validation failed: %v", err)
		return nil, err
	}

	if err := s.ensureSeeded(ctx, upd.Year, upd.Month); err != nil {
		return nil, err
	}

	record := &domain.BusinessHourRecord{
		Year:        upd.Year,
		Month:       upd.Month,
		WeekOfMonth: upd.WeekOfMonth,
		DayOfWeek:   upd.DayOfWeek,
		IsClosed:    upd.IsClosed,
	}
	if !upd.IsClosed {
		open, closeAt := upd.OpenTime.String(), upd.CloseTime.String()
		record.OpenTime = &open
		record.CloseTime = &closeAt
	}

	saved, err := s.repo.Upsert(ctx, record)
	if err != nil {
		s.logger.Error("UpdateWeeklyTemplate: upsert failed: %v", err)
		return nil, fmt.Errorf("%w: UpdateWeeklyTemplate - upsert: %v", ErrInternal, err)
	}

	// Запись может служить запасным вариантом для других недель, поэтому сбрасываем весь месяц
	if s.cache != nil {
		days := slots.DaysInMonth(upd.Year, time.Month(upd.Month), s.loc)
		if err := s.cache.Invalidate(ctx, days...); err != nil {
			s.logger.Warn("UpdateWeeklyTemplate: cache invalidation failed: %v", err)
		}
	}

	s.logger.Info("UpdateWeeklyTemplate: saved record id=%d", saved.ID)
	return saved, nil
}

// ensureSeeded заполняет месяц шаблоном по умолчанию, если записей за месяц ещё нет.
// Повторный вызов безопасен: вставка пропускает существующие ключи.
func (s *Service) ensureSeeded(ctx context.Context, year, month int) error {
	exists, err := s.repo.ExistsForMonth(ctx, year, month)
	if err != nil {
		s.logger.Error("ensureSeeded: existence check failed for %04d-%02d: %v", year, month, err)
		return fmt.Errorf("%w: ensureSeeded - exists: %v", ErrInternal, err)
	}
	if exists {
		return nil
	}

	records := s.seedRecords(year, month)
	inserted, err := s.repo.SeedMonth(ctx, records)
	if err != nil {
		s.logger.Error("ensureSeeded: seeding failed for %04d-%02d: %v", year, month, err)
		return fmt.Errorf("%w: ensureSeeded - seed: %v", ErrInternal, err)
	}

	s.logger.Info("ensureSeeded: seeded %04d-%02d, inserted=%d of %d", year, month, inserted, len(records))
	return nil
}

// seedRecords по одной записи на каждую пару (неделя месяца, день недели), встречающуюся в месяце
func (s *Service) seedRecords(year, month int) []*domain.BusinessHourRecord {
	days := slots.DaysInMonth(year, time.Month(month), s.loc)
	records := make([]*domain.BusinessHourRecord, 0, len(days))

	for _, day := range days {
		dow := domain.WeekdayOf(day)
		tpl := s.defaultWeek.Day(dow)

		record := &domain.BusinessHourRecord{
			Year:        year,
			Month:       month,
			WeekOfMonth: slots.WeekOfMonth(day),
			DayOfWeek:   dow,
			IsClosed:    tpl.IsClosed,
		}
		if !tpl.IsClosed {
			open, closeAt := tpl.OpenTime.String(), tpl.CloseTime.String()
			record.OpenTime = &open
			record.CloseTime = &closeAt
		}
		records = append(records, record)
	}

	return records
}

// dateOnly календарная дата в часовом поясе расписания; переводить время между поясами нельзя,
// иначе полночь UTC может сдвинуться на соседний день
func (s *Service) dateOnly(date time.Time) time.Time {
	loc := s.loc
	if loc == nil {
		loc = date.Location()
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}

func validateMonth(year, month int) error {
	if year < minYear || year > maxYear {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, minYear, maxYear)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}
	return nil
}

func validateUpdate(upd domain.WeeklyTemplateUpdate) error {
	if err := validateMonth(upd.Year, upd.Month); err != nil {
		return err
	}
	if upd.WeekOfMonth < 1 || upd.WeekOfMonth > domain.MaxWeekOfMonth {
		return fmt.Errorf("%w: weekOfMonth must be between 1 and %d", ErrInvalidInput, domain.MaxWeekOfMonth)
	}
	if !upd.DayOfWeek.IsValid() {
		return fmt.Errorf("%w: invalid dayOfWeek", ErrInvalidInput)
	}
	if upd.IsClosed {
		return nil
	}

	if upd.OpenTime == nil || upd.CloseTime == nil {
		return fmt.Errorf("%w: openTime and closeTime are required for an open day", ErrInvalidInput)
	}
	if err := upd.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: openTime: %v", ErrInvalidInput, err)
	}
	if err := upd.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: closeTime: %v", ErrInvalidInput, err)
	}
	if !upd.OpenTime.IsBefore(*upd.CloseTime) {
		return fmt.Errorf("%w: closeTime must be after openTime", ErrInvalidInput)
	}

	return nil
}
