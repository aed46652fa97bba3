package cancel_venue_bookings

import "context"

// CascadeHandler массовая отмена с повторами при сбоях хранилища
type CascadeHandler interface {
	VenueDeleted(ctx context.Context, venueID int64) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
