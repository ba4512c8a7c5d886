package cancellation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByTokenHash(ctx context.Context, hash string) (*domain.Reservation, error)
	CancelByTokenHash(ctx context.Context, hash string, reason *string, cancelledAt time.Time) (*domain.Reservation, error)
}

// CatalogClient интерфейс клиента каталога услуг (для названия услуги в сводке)
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalog.Service, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	NotifyCancelled(ctx context.Context, summary domain.ReservationSummary) error
}

// AvailabilityCache кэш доступности
type AvailabilityCache interface {
	Invalidate(ctx context.Context, dates ...time.Time) error
}

// Metrics счётчики исходов отмены
type Metrics interface {
	IncCancellation(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
