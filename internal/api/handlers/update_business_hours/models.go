package update_business_hours

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

var errInvalidDayOfWeek = errors.New("dayOfWeek must be a weekday name or a number 1-7")

// DayOfWeek принимает как имя ("monday"), так и ISO номер (1..7)
type DayOfWeek domain.Weekday

func (d *DayOfWeek) UnmarshalJSON(data []byte) error {
	var number int
	if err := json.Unmarshal(data, &number); err == nil {
		if !domain.Weekday(number).IsValid() {
			return errInvalidDayOfWeek
		}
		*d = DayOfWeek(number)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return errInvalidDayOfWeek
	}
	wd, err := domain.ParseWeekday(name)
	if err != nil {
		return errInvalidDayOfWeek
	}
	*d = DayOfWeek(wd)
	return nil
}

// UpdateBusinessHoursRequest HTTP request model
type UpdateBusinessHoursRequest struct {
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	WeekOfMonth int       `json:"weekOfMonth"`
	DayOfWeek   DayOfWeek `json:"dayOfWeek"`
	IsClosed    bool      `json:"isClosed"`
	OpenTime    *string   `json:"openTime,omitempty"`
	CloseTime   *string   `json:"closeTime,omitempty"`
}

// BusinessHoursResponse HTTP response model
type BusinessHoursResponse struct {
	ID          int64   `json:"id"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	WeekOfMonth int     `json:"weekOfMonth"`
	DayOfWeek   string  `json:"dayOfWeek"`
	IsClosed    bool    `json:"isClosed"`
	OpenTime    *string `json:"openTime"`
	CloseTime   *string `json:"closeTime"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса; формат времени проверяет сервис
func (r *UpdateBusinessHoursRequest) ToServiceRequest() domain.WeeklyTemplateUpdate {
	upd := domain.WeeklyTemplateUpdate{
		Year:        r.Year,
		Month:       r.Month,
		WeekOfMonth: r.WeekOfMonth,
		DayOfWeek:   domain.Weekday(r.DayOfWeek),
		IsClosed:    r.IsClosed,
	}
	if r.OpenTime != nil {
		open := types.TimeString(strings.TrimSpace(*r.OpenTime))
		upd.OpenTime = &open
	}
	if r.CloseTime != nil {
		closeAt := types.TimeString(strings.TrimSpace(*r.CloseTime))
		upd.CloseTime = &closeAt
	}
	return upd
}

// FromRecord конвертирует сохранённую запись в HTTP response
func FromRecord(record *domain.BusinessHourRecord) *BusinessHoursResponse {
	return &BusinessHoursResponse{
		ID:          record.ID,
		Year:        record.Year,
		Month:       record.Month,
		WeekOfMonth: record.WeekOfMonth,
		DayOfWeek:   record.DayOfWeek.String(),
		IsClosed:    record.IsClosed,
		OpenTime:    record.OpenTime,
		CloseTime:   record.CloseTime,
		UpdatedAt:   record.UpdatedAt.Format(time.RFC3339),
	}
}
