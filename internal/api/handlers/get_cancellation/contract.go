package get_cancellation

import (
	"context"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

type CancellationService interface {
	Resolve(ctx context.Context, token string) (*domain.ReservationSummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
