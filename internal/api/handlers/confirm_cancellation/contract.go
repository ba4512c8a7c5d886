package confirm_cancellation

import (
	"context"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

type CancellationService interface {
	Cancel(ctx context.Context, token string, reason *string) (*domain.ReservationSummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
