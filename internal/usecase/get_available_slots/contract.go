package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/internal/infra/cache/availability"
	"github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
)

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalog.Service, error)
}

// HoursResolver разрешение часов работы на дату
type HoursResolver interface {
	Resolve(ctx context.Context, date time.Time) (domain.OperatingHours, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// ListByDate без транзакции читает без блокировок
	ListByDate(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// AvailabilityCache кэш рассчитанной доступности
type AvailabilityCache interface {
	Get(ctx context.Context, date time.Time, serviceID int64) (*availability.Entry, bool, error)
	Generation(ctx context.Context, date time.Time) (int64, error)
	Set(ctx context.Context, date time.Time, serviceID int64, generation int64, entry *availability.Entry) error
}

// Metrics счётчик попаданий в кэш
type Metrics interface {
	IncCacheLookup(hit bool)
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
