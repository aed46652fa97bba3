package get_court_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SportZone-BookingService/internal/api/handlers"
)

const (
	msgInvalidCourtID = "некорректный ID корта"
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

// Handle GET /api/v1/courts/{courtId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courtIDStr := vars["courtId"]

	courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /courts/{courtId}/bookings - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	result, err := h.service.GetCourtBookings(r.Context(), courtID)
	if err != nil {
		h.logger.Error("GET /courts/{courtId}/bookings - Failed to get bookings: court_id=%d, error=%v",
			courtID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /courts/{courtId}/bookings - Bookings retrieved successfully: court_id=%d, count=%d",
		courtID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, FromServiceList(result))
}
