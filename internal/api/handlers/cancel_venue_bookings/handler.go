package cancel_venue_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SportZone-BookingService/internal/api/handlers"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
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

// Handle PATCH /api/v1/venues/{venueId}/bookings/cancel
//
// Вызывается venue-сервисом при удалении площадки. Идемпотентен: повторный
// вызов вернет cancelled=0.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /venues/{venueId}/bookings/cancel - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	count, err := h.cascade.VenueDeleted(r.Context(), venueID)
	if err != nil {
		h.logger.Error("PATCH /venues/{venueId}/bookings/cancel - Cascade failed: venue_id=%d, error=%v",
			venueID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /venues/{venueId}/bookings/cancel - Cancelled %d bookings: venue_id=%d",
		count, venueID)
	handlers.RespondJSON(w, http.StatusOK, CancelledResponse{Cancelled: count})
}
