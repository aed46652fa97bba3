package models

import (
	"time"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
)

// CourtConfigResponse конфигурация корта на выходе сервиса
type CourtConfigResponse struct {
	CourtID      int64
	OpenHour     int
	CloseHour    int
	PricePerHour float64
	UpdatedAt    time.Time
}

// UpdateCourtConfigRequest запрос на обновление конфигурации корта
type UpdateCourtConfigRequest struct {
	OpenHour     int
	CloseHour    int
	PricePerHour float64
}

// FromDomainConfig конвертирует domain.CourtConfig в модель сервиса
func FromDomainConfig(c *domain.CourtConfig) *CourtConfigResponse {
	return &CourtConfigResponse{
		CourtID:      c.CourtID,
		OpenHour:     c.OpenHour,
		CloseHour:    c.CloseHour,
		PricePerHour: c.PricePerHour,
		UpdatedAt:    c.UpdatedAt,
	}
}
