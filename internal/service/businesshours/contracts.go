package businesshours

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// Repository интерфейс репозитория часов работы
type Repository interface {
	RecordFinder
	ExistsForMonth(ctx context.Context, year, month int) (bool, error)
	SeedMonth(ctx context.Context, records []*domain.BusinessHourRecord) (int64, error)
	Upsert(ctx context.Context, record *domain.BusinessHourRecord) (*domain.BusinessHourRecord, error)
	ListForMonth(ctx context.Context, year, month int) ([]*domain.BusinessHourRecord, error)
}

// RecordFinder две ступени поиска записи: точный ключ и запасной вариант по дню недели
type RecordFinder interface {
	GetExact(ctx context.Context, year, month, weekOfMonth int, dayOfWeek domain.Weekday) (*domain.BusinessHourRecord, error)
	GetFallback(ctx context.Context, year, month int, dayOfWeek domain.Weekday) (*domain.BusinessHourRecord, error)
}

// AvailabilityCache кэш доступности, сбрасываемый при изменении шаблона
type AvailabilityCache interface {
	Invalidate(ctx context.Context, dates ...time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
