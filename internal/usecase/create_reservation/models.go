package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID     int64            // ID услуги в каталоге
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала слота (например, "10:00")
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента
	CustomerEmail *string          // Email клиента (опционально)
	Notes         *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием.
// CancelToken возвращается только здесь и больше нигде не хранится в открытом виде.
type Response struct {
	ReservationID   int64
	CancelToken     string
	ServiceID       int64
	ServiceName     string
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	CustomerName    string
	CreatedAt       time.Time
}
