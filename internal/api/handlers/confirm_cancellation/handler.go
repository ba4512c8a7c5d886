package confirm_cancellation

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationEngine/internal/service/cancellation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidReason      = "причина отмены слишком длинная"
	msgNotFound           = "ссылка недействительна или уже использована"
	msgAlreadyCancelled   = "бронирование уже отменено"
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

// Handle POST /api/v1/cancellations/{token}
// Body: {"reason": "..."} (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /cancellations/{token} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	summary, err := h.service.Cancel(r.Context(), token, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, cancellation.ErrNotFound):
			h.logger.Warn("POST /cancellations/{token} - Credential not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancellation.ErrAlreadyCancelled):
			h.logger.Warn("POST /cancellations/{token} - Already cancelled")
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, cancellation.ErrInvalidInput):
			h.logger.Warn("POST /cancellations/{token} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReason)

		default:
			h.logger.Error("POST /cancellations/{token} - Failed to cancel: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cancellations/{token} - Reservation cancelled successfully: reservation_id=%d", summary.ReservationID)
	handlers.RespondJSON(w, http.StatusOK, FromSummary(summary))
}
