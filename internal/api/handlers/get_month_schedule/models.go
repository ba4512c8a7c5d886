package get_month_schedule

import (
	"errors"
	"strconv"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

var errInvalidMonth = errors.New("year and month are required integers")

// DayResponse строка календаря
type DayResponse struct {
	Date      string  `json:"date"`
	IsClosed  bool    `json:"isClosed"`
	OpenTime  *string `json:"openTime"`
	CloseTime *string `json:"closeTime"`
}

// MonthScheduleResponse HTTP response model
type MonthScheduleResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []DayResponse `json:"days"`
}

// parseMonth разбирает query параметры year и month; диапазоны проверяет сервис
func parseMonth(yearStr, monthStr string) (int, int, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, errInvalidMonth
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return 0, 0, errInvalidMonth
	}
	return year, month, nil
}

// FromSchedule конвертирует расписание месяца в HTTP response
func FromSchedule(year, month int, schedule []domain.DaySchedule) *MonthScheduleResponse {
	days := make([]DayResponse, 0, len(schedule))
	for _, day := range schedule {
		entry := DayResponse{
			Date:     day.Date.Format(domain.DateFormat),
			IsClosed: day.IsClosed,
		}
		if day.OpenTime != nil && day.CloseTime != nil {
			open, closeAt := day.OpenTime.String(), day.CloseTime.String()
			entry.OpenTime = &open
			entry.CloseTime = &closeAt
		}
		days = append(days, entry)
	}

	return &MonthScheduleResponse{
		Year:  year,
		Month: month,
		Days:  days,
	}
}
