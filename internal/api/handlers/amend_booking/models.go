package amend_booking

import (
	"time"

	amendBooking "github.com/m04kA/SportZone-BookingService/internal/usecase/amend_booking"
)

// AmendBookingRequest HTTP request model
type AmendBookingRequest struct {
	StartTime string  `json:"startTime"` // RFC3339
	EndTime   string  `json:"endTime"`   // RFC3339
	Amount    float64 `json:"amount"`
	Status    *string `json:"status,omitempty"` // nil сохраняет текущий статус
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
func (r *AmendBookingRequest) ToUseCaseRequest(bookingID int64) (*amendBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &amendBooking.Request{
		BookingID: bookingID,
		StartTime: startTime,
		EndTime:   endTime,
		Amount:    r.Amount,
		Status:    r.Status,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *amendBooking.Response) *BookingResponse {
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
