package amend_booking

import (
	"time"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
)

// Request входные данные изменения бронирования.
// Status опционален: nil сохраняет текущий статус бронирования.
type Request struct {
	BookingID int64
	StartTime time.Time
	EndTime   time.Time
	Amount    float64
	Status    *string
}

// Response измененное бронирование
type Response struct {
	ID        int64
	UserID    int64
	CourtID   int64
	VenueID   int64
	StartTime time.Time
	EndTime   time.Time
	Amount    float64
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:        b.ID,
		UserID:    b.UserID,
		CourtID:   b.CourtID,
		VenueID:   b.VenueID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Amount:    b.Amount,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
