package update_business_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationEngine/internal/service/businesshours"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные часов работы"
)

type Handler struct {
	service BusinessHoursService
	logger  Logger
}

func NewHandler(service BusinessHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/business-hours
// Доступ проверяется middleware по заголовку X-Admin-Key
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateBusinessHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/business-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateWeeklyTemplate(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, businesshours.ErrInvalidInput):
			h.logger.Warn("PUT /admin/business-hours - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /admin/business-hours - Failed to update business hours: %04d-%02d week=%d, error=%v",
				req.Year, req.Month, req.WeekOfMonth, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/business-hours - Business hours updated successfully: record_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromRecord(result))
}
