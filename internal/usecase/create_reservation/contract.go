package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	LockDate(ctx context.Context, date time.Time) error
	ListByDate(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalog.Service, error)
}

// HoursResolver разрешение часов работы на дату
type HoursResolver interface {
	Resolve(ctx context.Context, date time.Time) (domain.OperatingHours, error)
}

// CredentialGenerator выпускает credential отмены: plaintext и хэш
type CredentialGenerator interface {
	Generate() (plaintext string, hash string, err error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	NotifyCreated(ctx context.Context, summary domain.ReservationSummary, cancelToken string) error
}

// AvailabilityCache кэш доступности
type AvailabilityCache interface {
	Invalidate(ctx context.Context, dates ...time.Time) error
}

// Metrics счётчики исходов создания
type Metrics interface {
	IncReservation(outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error
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
