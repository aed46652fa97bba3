package cancel_court_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SportZone-BookingService/internal/api/handlers"
)

const (
	msgInvalidCourtID = "некорректный ID корта"
)

// CancelledResponse результат каскадной отмены
type CancelledResponse struct {
	Cancelled int `json:"cancelled"`
}

type Handler struct {
	cascade CascadeHandler
	logger  Logger
}

func NewHandler(cascade CascadeHandler, logger Logger) *Handler {
	return &Handler{
		cascade: cascade,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/courts/{courtId}/bookings/cancel
//
// Вызывается venue-сервисом при удалении корта. Идемпотентен: повторный
// вызов вернет cancelled=0.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courtIDStr := vars["courtId"]

	courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /courts/{courtId}/bookings/cancel - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	count, err := h.cascade.CourtDeleted(r.Context(), courtID)
	if err != nil {
		h.logger.Error("PATCH /courts/{courtId}/bookings/cancel - Cascade failed: court_id=%d, error=%v",
			courtID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /courts/{courtId}/bookings/cancel - Cancelled %d bookings: court_id=%d",
		count, courtID)
	handlers.RespondJSON(w, http.StatusOK, CancelledResponse{Cancelled: count})
}
