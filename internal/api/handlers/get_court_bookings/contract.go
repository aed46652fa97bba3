package get_court_bookings

import (
	"context"

	"github.com/m04kA/SportZone-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetCourtBookings(ctx context.Context, courtID int64) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
