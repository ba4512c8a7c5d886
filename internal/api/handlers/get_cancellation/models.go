package get_cancellation

import (
	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// SummaryResponse то, что видит владелец ссылки на отмену
type SummaryResponse struct {
	ReservationID int64  `json:"reservationId"`
	ServiceID     int64  `json:"serviceId"`
	ServiceName   string `json:"serviceName,omitempty"`
	CustomerName  string `json:"customerName"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Status        string `json:"status"`
}

// FromSummary конвертирует сводку в HTTP response
func FromSummary(s *domain.ReservationSummary) *SummaryResponse {
	return &SummaryResponse{
		ReservationID: s.ReservationID,
		ServiceID:     s.ServiceID,
		ServiceName:   s.ServiceName,
		CustomerName:  s.CustomerName,
		Date:          s.Date.Format(domain.DateFormat),
		StartTime:     s.StartTime.String(),
		EndTime:       s.EndTime.String(),
		Status:        string(s.Status),
	}
}
