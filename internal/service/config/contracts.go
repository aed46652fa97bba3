package config

import (
	"context"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
	"github.com/m04kA/SportZone-BookingService/internal/integrations/venueservice"
)

// ConfigRepository интерфейс репозитория конфигурации кортов
type ConfigRepository interface {
	GetByCourtID(ctx context.Context, courtID int64) (*domain.CourtConfig, error)
	Upsert(ctx context.Context, config *domain.CourtConfig) (*domain.CourtConfig, error)
}

// VenueClient интерфейс клиента venue-сервиса
type VenueClient interface {
	GetCourt(ctx context.Context, courtID int64) (*venueservice.Court, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
