package slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// WeekOfMonth возвращает номер недели месяца (1..6), недели начинаются с понедельника:
//
//	ceil((day + isoWeekday(first of month) - 1) / 7), где воскресенье = 7
//
// Та же формула используется календарём на клиенте, менять её нельзя.
func WeekOfMonth(date time.Time) int {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	offset := int(domain.WeekdayOf(first))

	return (date.Day() + offset - 1 + 6) / 7
}

// DaysInMonth возвращает все даты месяца в указанном часовом поясе
func DaysInMonth(year int, month time.Month, loc *time.Location) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
