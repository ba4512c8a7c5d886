package create_reservation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/internal/slots"
	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

// validateRequest валидирует входные данные запроса и нормализует строковые поля
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName must be at most %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	if req.CustomerPhone == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.CustomerPhone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customerPhone must be at most %d characters", ErrInvalidInput, domain.MaxCustomerPhoneLength)
	}

	req.CustomerEmail = trimOptional(req.CustomerEmail)
	if req.CustomerEmail != nil {
		if utf8.RuneCountInString(*req.CustomerEmail) > domain.MaxCustomerEmailLength {
			return fmt.Errorf("%w: customerEmail must be at most %d characters", ErrInvalidInput, domain.MaxCustomerEmailLength)
		}
		if !strings.Contains(*req.CustomerEmail, "@") {
			return fmt.Errorf("%w: customerEmail is malformed", ErrInvalidInput)
		}
	}

	req.Notes = trimOptional(req.Notes)
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSlot проверяет слот относительно часов работы и правила опережения.
// Конец слота вычисляется из длительности услуги, от клиента не принимается.
func validateSlot(date time.Time, start types.TimeString, duration int, hours domain.OperatingHours, now time.Time, rules slots.Rules) (types.TimeString, error) {
	if hours.IsClosed {
		return "", fmt.Errorf("%w: %s", ErrClosed, hours.ClosedReason)
	}

	if start.IsBefore(hours.OpenTime) {
		return "", fmt.Errorf("%w: starts before opening at %s", ErrOutsideBusinessHours, hours.OpenTime)
	}

	if !slots.IsOnGrid(start, hours.OpenTime, rules) {
		return "", fmt.Errorf("%w: start must be a multiple of %d minutes from %s", ErrInvalidTimeSlot, rules.StepMinutes, hours.OpenTime)
	}

	end, err := start.AddMinutes(duration)
	if err != nil || hours.CloseTime.IsBefore(end) {
		return "", fmt.Errorf("%w: ends after closing at %s", ErrOutsideBusinessHours, hours.CloseTime)
	}

	if !slots.SatisfiesLeadTime(date, start.Minutes(), now, rules) {
		return "", fmt.Errorf("%w: same-day reservations need %d minutes notice", ErrTooLateToBook, rules.LeadTimeMinutes)
	}

	return end, nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
