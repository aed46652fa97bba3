package get_venue_bookings

import (
	"context"

	"github.com/m04kA/SportZone-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetVenueBookings(ctx context.Context, venueID int64) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
