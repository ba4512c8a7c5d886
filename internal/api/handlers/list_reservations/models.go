package list_reservations

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/internal/service/reservations/models"
)

var errMissingDate = errors.New("date is required")

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(dateStr, statusStr, includeInactiveStr string, loc *time.Location) (*models.ListReservationsRequest, error) {
	if dateStr == "" {
		return nil, errMissingDate
	}

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	req := &models.ListReservationsRequest{
		Date:            date,
		IncludeInactive: true, // Календарю нужны все статусы
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
