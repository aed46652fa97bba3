package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SportZone-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CourtID   int64   `json:"courtId"`
	VenueID   int64   `json:"venueId"`
	StartTime string  `json:"startTime"` // RFC3339, "2026-09-01T10:00:00Z"
	EndTime   string  `json:"endTime"`   // RFC3339
	Amount    float64 `json:"amount"`
	Status    *string `json:"status,omitempty"` // pending (default) | confirmed
}

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

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:    userID,
		CourtID:   r.CourtID,
		VenueID:   r.VenueID,
		StartTime: startTime,
		EndTime:   endTime,
		Amount:    r.Amount,
		Status:    r.Status,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		UserID:    resp.UserID,
		CourtID:   resp.CourtID,
		VenueID:   resp.VenueID,
		StartTime: resp.StartTime.Format(time.RFC3339),
		EndTime:   resp.EndTime.Format(time.RFC3339),
		Amount:    resp.Amount,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
