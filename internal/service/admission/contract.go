package admission

import (
	"context"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindOverlapping(ctx context.Context, courtID int64, interval domain.Interval, excludeStatuses []domain.BookingStatus) ([]*domain.Booking, error)
}
