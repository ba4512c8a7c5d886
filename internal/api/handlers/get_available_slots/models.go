package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ReservationEngine/internal/usecase/get_available_slots"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date            string          `json:"date"`
	ServiceID       int64           `json:"serviceId"`
	DurationMinutes int             `json:"durationMinutes"`
	OperatingHours  *OperatingHours `json:"operatingHours"`
	ClosedReason    string          `json:"closedReason,omitempty"`
	AvailableSlots  []AvailableSlot `json:"availableSlots"`
}

// OperatingHours часы работы; null для закрытого дня
type OperatingHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// AvailableSlot модель свободного интервала
type AvailableSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Start: slot.Start.String(),
			End:   slot.End.String(),
		}
	}

	out := &AvailabilityResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		ClosedReason:    resp.ClosedReason,
		AvailableSlots:  slots,
	}
	if !resp.IsClosed && resp.OpenTime != nil && resp.CloseTime != nil {
		out.OperatingHours = &OperatingHours{Open: resp.OpenTime.String(), Close: resp.CloseTime.String()}
	}

	return out
}

// ToUseCaseRequest создает запрос use case из query параметров; дата трактуется в часовом поясе расписания
func ToUseCaseRequest(serviceID int64, dateStr string, loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
