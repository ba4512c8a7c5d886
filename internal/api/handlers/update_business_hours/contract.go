package update_business_hours

import (
	"context"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

type BusinessHoursService interface {
	UpdateWeeklyTemplate(ctx context.Context, upd domain.WeeklyTemplateUpdate) (*domain.BusinessHourRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
