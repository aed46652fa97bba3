package get_court_config

import (
	"context"

	"github.com/m04kA/SportZone-BookingService/internal/service/config/models"
)

type ConfigService interface {
	GetCourtConfig(ctx context.Context, courtID int64) (*models.CourtConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
