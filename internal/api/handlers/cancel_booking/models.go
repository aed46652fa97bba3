package cancel_booking

import (
	"time"

	"github.com/m04kA/SportZone-BookingService/internal/service/bookings/models"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"userId"`
	CourtID   int64   `json:"courtId"`
	VenueID   int64   `json:"venueId"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(b *models.BookingResponse) *BookingResponse {
	return &BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		CourtID:   b.CourtID,
		VenueID:   b.VenueID,
		StartTime: b.StartTime.Format(time.RFC3339),
		EndTime:   b.EndTime.Format(time.RFC3339),
		Amount:    b.Amount,
		Status:    b.Status,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}
