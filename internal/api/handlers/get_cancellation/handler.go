package get_cancellation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationEngine/internal/service/cancellation"
)

const (
	msgNotFound = "ссылка недействительна или уже использована"
)

type Handler struct {
	service CancellationService
	logger  Logger
}

func NewHandler(service CancellationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cancellations/{token}
// Токен в логи не пишется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	summary, err := h.service.Resolve(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, cancellation.ErrNotFound):
			h.logger.Warn("GET /cancellations/{token} - Credential not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /cancellations/{token} - Failed to resolve credential: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cancellations/{token} - Summary retrieved: reservation_id=%d", summary.ReservationID)
	handlers.RespondJSON(w, http.StatusOK, FromSummary(summary))
}
