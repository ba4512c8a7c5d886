package get_month_schedule

import (
	"context"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

type ScheduleService interface {
	GetMonthSchedule(ctx context.Context, year, month int) ([]domain.DaySchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
