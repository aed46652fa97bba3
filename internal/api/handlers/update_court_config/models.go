package update_court_config

import (
	"github.com/m04kA/SportZone-BookingService/internal/service/config/models"
)

// UpdateCourtConfigRequest HTTP request model
type UpdateCourtConfigRequest struct {
	OpenHour     int     `json:"openHour"`
	CloseHour    int     `json:"closeHour"`
	PricePerHour float64 `json:"pricePerHour"`
}

// CourtConfigResponse HTTP response model
type CourtConfigResponse struct {
	CourtID      int64   `json:"courtId"`
	OpenHour     int     `json:"openHour"`
	CloseHour    int     `json:"closeHour"`
	PricePerHour float64 `json:"pricePerHour"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateCourtConfigRequest) ToServiceRequest() *models.UpdateCourtConfigRequest {
	return &models.UpdateCourtConfigRequest{
		OpenHour:     r.OpenHour,
		CloseHour:    r.CloseHour,
		PricePerHour: r.PricePerHour,
	}
}

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(c *models.CourtConfigResponse) *CourtConfigResponse {
	return &CourtConfigResponse{
		CourtID:      c.CourtID,
		OpenHour:     c.OpenHour,
		CloseHour:    c.CloseHour,
		PricePerHour: c.PricePerHour,
	}
}
