package notification

import (
	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// Event тип события бронирования
type Event string

const (
	EventReservationCreated   Event = "reservation_created"
	EventReservationCancelled Event = "reservation_cancelled"
)

// Message тело запроса к сервису уведомлений
type Message struct {
	Event         Event   `json:"event"`
	ReservationID int64   `json:"reservation_id"`
	ServiceID     int64   `json:"service_id"`
	ServiceName   string  `json:"service_name,omitempty"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	CustomerEmail *string `json:"customer_email,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	CancelToken   string  `json:"cancel_token,omitempty"`
}

func newMessage(event Event, summary domain.ReservationSummary, cancelToken string) Message {
	return Message{
		Event:         event,
		ReservationID: summary.ReservationID,
		ServiceID:     summary.ServiceID,
		ServiceName:   summary.ServiceName,
		CustomerName:  summary.CustomerName,
		CustomerPhone: summary.CustomerPhone,
		CustomerEmail: summary.CustomerEmail,
		Date:          summary.Date.Format(domain.DateFormat),
		StartTime:     summary.StartTime.String(),
		EndTime:       summary.EndTime.String(),
		CancelToken:   cancelToken,
	}
}
