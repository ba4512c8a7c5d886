package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// ListReservationsRequest запрос на получение бронирований за дату
type ListReservationsRequest struct {
	Date            time.Time
	Status          *string // Фильтр по статусу (опционально)
	IncludeInactive bool    // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр.
// Фильтр по отменённым требует выборки с неактивными.
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationFilter, *domain.ReservationStatus, error) {
	filter := domain.ReservationFilter{
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status == nil {
		return filter, nil, nil
	}

	status, err := ToDomainStatus(*r.Status)
	if err != nil {
		return filter, nil, err
	}
	if status != domain.StatusConfirmed {
		filter.IncludeInactive = true
	}
	return filter, &status, nil
}

// ReservationResponse бронирование для административного календаря
type ReservationResponse struct {
	ID            int64      `json:"id"`
	ServiceID     int64      `json:"serviceId"`
	ServiceName   string     `json:"serviceName,omitempty"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	CustomerEmail *string    `json:"customerEmail,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Date          string     `json:"date"`
	StartTime     string     `json:"startTime"`
	EndTime       string     `json:"endTime"`
	Status        string     `json:"status"`
	CancelReason  *string    `json:"cancelReason,omitempty"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ReservationListResponse список бронирований за дату
type ReservationListResponse struct {
	Date         string                 `json:"date"`
	Reservations []*ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain модель в response.
// Credential отмены наружу не отдаётся ни в каком виде.
func FromDomainReservation(r *domain.Reservation, serviceName string) *ReservationResponse {
	return &ReservationResponse{
		ID:            r.ID,
		ServiceID:     r.ServiceID,
		ServiceName:   serviceName,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		Notes:         r.Notes,
		Date:          r.Date.Format(domain.DateFormat),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		Status:        string(r.Status),
		CancelReason:  r.CancelReason,
		CancelledAt:   r.CancelledAt,
		CreatedAt:     r.CreatedAt,
	}
}

// ToDomainStatus конвертирует строку в статус бронирования
func ToDomainStatus(s string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(s) {
	case domain.StatusConfirmed, domain.StatusCancelled, domain.StatusPending, domain.StatusCompleted:
		return domain.ReservationStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
