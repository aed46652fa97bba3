package get_venue_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SportZone-BookingService/internal/api/handlers"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{venueId}/bookings - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	result, err := h.service.GetVenueBookings(r.Context(), venueID)
	if err != nil {
		h.logger.Error("GET /venues/{venueId}/bookings - Failed to get bookings: venue_id=%d, error=%v",
			venueID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /venues/{venueId}/bookings - Bookings retrieved successfully: venue_id=%d, count=%d",
		venueID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, FromServiceList(result))
}
