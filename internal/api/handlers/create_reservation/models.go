package create_reservation

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationEngine/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// CreateReservationRequest HTTP request model.
// Время окончания не принимается: оно вычисляется из длительности услуги.
type CreateReservationRequest struct {
	ServiceID     int64   `json:"serviceId"`
	Date          string  `json:"date"`      // "2025-10-15"
	StartTime     string  `json:"startTime"` // "10:00"
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model; cancelToken выдаётся один раз
type ReservationResponse struct {
	ReservationID   int64  `json:"reservationId"`
	CancelToken     string `json:"cancelToken"`
	ServiceID       int64  `json:"serviceId"`
	ServiceName     string `json:"serviceName"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	CustomerName    string `json:"customerName"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(loc *time.Location) (*createReservation.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, errInvalidDate
	}

	// Строгий формат: "9:00" и "09:00:00" отклоняются
	startTime := types.TimeString(r.StartTime)
	if err := startTime.Validate(); err != nil {
		return nil, errInvalidTime
	}

	return &createReservation.Request{
		ServiceID:     r.ServiceID,
		Date:          date,
		StartTime:     startTime,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ReservationID:   resp.ReservationID,
		CancelToken:     resp.CancelToken,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CustomerName:    resp.CustomerName,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
