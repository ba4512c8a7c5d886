package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги в каталоге
	Date      time.Time // Дата (без времени) в часовом поясе расписания
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	ServiceID       int64
	DurationMinutes int

	IsClosed     bool
	ClosedReason string
	OpenTime     *types.TimeString
	CloseTime    *types.TimeString

	Slots []Slot
}

// Slot свободный интервал [Start, End)
type Slot struct {
	Start types.TimeString
	End   types.TimeString
}
