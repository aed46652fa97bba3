package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
	configModels "github.com/m04kA/SportZone-BookingService/internal/service/config/models"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindOverlapping(ctx context.Context, courtID int64, interval domain.Interval, excludeStatuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// ConfigService интерфейс сервиса конфигурации кортов
type ConfigService interface {
	GetCourtConfig(ctx context.Context, courtID int64) (*configModels.CourtConfigResponse, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
