package slots

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

// ErrInvalidDuration возвращается при неположительной длительности услуги
var ErrInvalidDuration = errors.New("slots: service duration must be positive")

// Generate перечисляет допустимые начала на сетке от открытия до close-duration включительно.
// Для сегодняшней даты отбрасываются слоты, начинающиеся раньше LeadTimeCutoff.
// Существующие бронирования здесь не учитываются, см. FilterAvailable.
func Generate(date time.Time, durationMinutes int, hours domain.OperatingHours, now time.Time, rules Rules) ([]domain.CandidateSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}

	result := make([]domain.CandidateSlot, 0)
	if hours.IsClosed || hours.OpenTime.IsZero() || hours.CloseTime.IsZero() {
		return result, nil
	}

	open := hours.OpenTime.Minutes()
	closeAt := hours.CloseTime.Minutes()
	if closeAt <= open {
		return result, nil
	}

	lastStart := closeAt - durationMinutes
	if lastStart < open {
		return result, nil
	}

	minStart := open
	if IsSameDay(date, now) {
		if cutoff := LeadTimeCutoff(now, rules); cutoff > minStart {
			minStart = cutoff
		}
	}

	for start := open; start <= lastStart; start += rules.step() {
		if start < minStart {
			continue
		}

		startTS, err := types.FromMinutes(start)
		if err != nil {
			return nil, err
		}
		endTS, err := types.FromMinutes(start + durationMinutes)
		if err != nil {
			return nil, err
		}

		result = append(result, domain.CandidateSlot{Start: startTS, End: endTS})
	}

	return result, nil
}

// IsOnGrid проверяет, что start отстоит от открытия на кратное шагу число минут
func IsOnGrid(start, open types.TimeString, rules Rules) bool {
	diff := start.Minutes() - open.Minutes()
	return diff >= 0 && diff%rules.step() == 0
}
