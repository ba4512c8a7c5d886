package confirm_cancellation

import (
	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// CancelRequest HTTP request model; тело необязательно
type CancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelResponse HTTP response model
type CancelResponse struct {
	ReservationID int64  `json:"reservationId"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Status        string `json:"status"`
}

// FromSummary конвертирует сводку отменённого бронирования в HTTP response
func FromSummary(s *domain.ReservationSummary) *CancelResponse {
	return &CancelResponse{
		ReservationID: s.ReservationID,
		Date:          s.Date.Format(domain.DateFormat),
		StartTime:     s.StartTime.String(),
		EndTime:       s.EndTime.String(),
		Status:        string(s.Status),
	}
}
