package get_month_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationEngine/internal/service/businesshours"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgInvalidMonth  = "некорректный год или месяц"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule
// Query params: year, month
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"))
	if err != nil {
		h.logger.Warn("GET /schedule - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	schedule, err := h.service.GetMonthSchedule(r.Context(), year, month)
	if err != nil {
		switch {
		case errors.Is(err, businesshours.ErrInvalidInput):
			h.logger.Warn("GET /schedule - Invalid month: year=%d, month=%d", year, month)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /schedule - Failed to get schedule: year=%d, month=%d, error=%v", year, month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule - Schedule retrieved successfully: year=%d, month=%d, days=%d",
		year, month, len(schedule))
	handlers.RespondJSON(w, http.StatusOK, FromSchedule(year, month, schedule))
}
