package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, page, size int) ([]*domain.Booking, int64, error)
	GetByCourtID(ctx context.Context, courtID int64) ([]*domain.Booking, error)
	GetByVenueID(ctx context.Context, venueID int64) ([]*domain.Booking, error)
	GetByStatusBefore(ctx context.Context, status domain.BookingStatus, before time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	BulkUpdateStatus(ctx context.Context, ids []int64, status domain.BookingStatus) ([]int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
