package get_court_config

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
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/config
//
// Для кортов без сохраненной конфигурации возвращается окно по умолчанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courtIDStr := vars["courtId"]

	courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /courts/{courtId}/config - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	config, err := h.service.GetCourtConfig(r.Context(), courtID)
	if err != nil {
		h.logger.Error("GET /courts/{courtId}/config - Failed to get config: court_id=%d, error=%v",
			courtID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /courts/{courtId}/config - Config retrieved successfully: court_id=%d", courtID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(config))
}
