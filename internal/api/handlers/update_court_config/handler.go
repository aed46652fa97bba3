package update_court_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SportZone-BookingService/internal/api/handlers"
	configService "github.com/m04kA/SportZone-BookingService/internal/service/config"
)

const (
	msgInvalidCourtID     = "некорректный ID корта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректное окно работы корта или цена"
	msgCourtNotFound      = "корт не найден"
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

// Handle PUT /api/v1/courts/{courtId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courtIDStr := vars["courtId"]

	courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /courts/{courtId}/config - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	var req UpdateCourtConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /courts/{courtId}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	config, err := h.service.UpdateCourtConfig(r.Context(), courtID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrInvalidConfig):
			h.logger.Warn("PUT /courts/{courtId}/config - Invalid config: court_id=%d", courtID)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, configService.ErrCourtNotFound):
			h.logger.Warn("PUT /courts/{courtId}/config - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		default:
			h.logger.Error("PUT /courts/{courtId}/config - Failed to update config: court_id=%d, error=%v",
				courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /courts/{courtId}/config - Config updated successfully: court_id=%d", courtID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(config))
}
