package amend_booking

import (
	"context"

	"github.com/m04kA/SportZone-BookingService/internal/service/bookings/models"
	amendBooking "github.com/m04kA/SportZone-BookingService/internal/usecase/amend_booking"
)

type AmendBookingUseCase interface {
	Execute(ctx context.Context, req *amendBooking.Request) (*amendBooking.Response, error)
}

// BookingService нужен для проверки владельца до запуска use case
type BookingService interface {
	GetByID(ctx context.Context, id int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
