package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"

	// StatusPending и StatusCompleted остались только как подписи для отображения,
	// ядро их не выставляет и не проверяет
	StatusPending   ReservationStatus = "pending"
	StatusCompleted ReservationStatus = "completed"
)

// Reservation бронирование на конкретную дату.
// StartTime и EndTime хранятся отдельно от даты, чтобы не зависеть от часового пояса.
type Reservation struct {
	ID            int64
	ServiceID     int64
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	Notes         *string

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    ReservationStatus

	Credential   CancelCredential
	CancelledAt  *time.Time
	CancelReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the reservation occupies its time range
func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the confirmed -> cancelled transition is legal
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed
}

// Interval returns the occupied [start, end) range in minutes of day
func (r *Reservation) Interval() (start, end int) {
	return r.StartTime.Minutes(), r.EndTime.Minutes()
}

// Summary builds the customer-facing projection of the reservation
func (r *Reservation) Summary() ReservationSummary {
	return ReservationSummary{
		ReservationID: r.ID,
		ServiceID:     r.ServiceID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        r.Status,
	}
}

// ReservationSummary то, что видит владелец credential и получает сервис уведомлений
type ReservationSummary struct {
	ReservationID int64
	ServiceID     int64
	ServiceName   string
	CustomerName  string
	CustomerEmail *string
	CustomerPhone string
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	Status        ReservationStatus
}

// ReservationFilter фильтр для выборки бронирований за дату
type ReservationFilter struct {
	Date            time.Time
	IncludeInactive bool // включать отменённые
}
