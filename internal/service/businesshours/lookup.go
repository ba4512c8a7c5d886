package businesshours

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	bhRepo "github.com/m04kA/SMC-ReservationEngine/internal/infra/storage/businesshours"
	"github.com/m04kA/SMC-ReservationEngine/internal/slots"
	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

// findRecord поиск записи часов работы для даты:
//  1. точное совпадение (год, месяц, неделя месяца, день недели);
//  2. иначе запись того же дня недели в месяце с наименьшим номером недели.
//
// (nil, nil), если не найдено ни то, ни другое.
func findRecord(ctx context.Context, finder RecordFinder, date time.Time) (*domain.BusinessHourRecord, error) {
	year, month := date.Year(), int(date.Month())
	week := slots.WeekOfMonth(date)
	dow := domain.WeekdayOf(date)

	record, err := finder.GetExact(ctx, year, month, week, dow)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, bhRepo.ErrRecordNotFound) {
		return nil, err
	}

	record, err = finder.GetFallback(ctx, year, month, dow)
	if errors.Is(err, bhRepo.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

// toOperatingHours нормализует запись; всё, что нельзя разобрать, считается закрытым днём
func toOperatingHours(date time.Time, record *domain.BusinessHourRecord) domain.OperatingHours {
	if record == nil {
		return domain.Closed(date, domain.ClosedReasonNoRecord)
	}
	if record.IsClosed {
		return domain.Closed(date, domain.ClosedReasonMarkedClosed)
	}

	open, ok := parseTime(record.OpenTime)
	if !ok {
		return domain.Closed(date, domain.ClosedReasonMissingTime)
	}
	closeAt, ok := parseTime(record.CloseTime)
	if !ok {
		return domain.Closed(date, domain.ClosedReasonMissingTime)
	}

	// Окна через полночь не поддерживаются
	if !open.IsBefore(closeAt) {
		return domain.Closed(date, domain.ClosedReasonMisconfigured)
	}

	return domain.OperatingHours{Date: date, OpenTime: open, CloseTime: closeAt}
}

func parseTime(raw *string) (types.TimeString, bool) {
	if raw == nil {
		return "", false
	}
	t, err := types.NewTimeStringFromString(*raw)
	if err != nil {
		return "", false
	}
	return t, true
}

// monthRecords записи одного месяца в памяти; реализует RecordFinder для расписания месяца
type monthRecords []*domain.BusinessHourRecord

func (m monthRecords) GetExact(_ context.Context, year, month, weekOfMonth int, dayOfWeek domain.Weekday) (*domain.BusinessHourRecord, error) {
	for _, r := range m {
		if r.Year == year && r.Month == month && r.WeekOfMonth == weekOfMonth && r.DayOfWeek == dayOfWeek {
			return r, nil
		}
	}
	return nil, bhRepo.ErrRecordNotFound
}

func (m monthRecords) GetFallback(_ context.Context, year, month int, dayOfWeek domain.Weekday) (*domain.BusinessHourRecord, error) {
	var best *domain.BusinessHourRecord
	for _, r := range m {
		if r.Year != year || r.Month != month || r.DayOfWeek != dayOfWeek {
			continue
		}
		if best == nil || r.WeekOfMonth < best.WeekOfMonth {
			best = r
		}
	}
	if best == nil {
		return nil, bhRepo.ErrRecordNotFound
	}
	return best, nil
}
