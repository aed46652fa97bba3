package models

import (
	"time"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
)

// BookingResponse модель бронирования на выходе сервиса
type BookingResponse struct {
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

// BookingListResponse список бронирований без пагинации
type BookingListResponse struct {
	Bookings []*BookingResponse
}

// BookingPageResponse страница истории бронирований пользователя
type BookingPageResponse struct {
	Bookings []*BookingResponse
	Page     int
	Size     int
	Total    int64
}

// FromDomainBooking конвертирует domain.Booking в модель сервиса
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
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

// FromDomainBookingList конвертирует слайс domain.Booking в список сервиса
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result}
}

// ToDomainBookingStatus валидирует и конвертирует строковый статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !domain.IsValidStatus(status) {
		return "", &InvalidStatusError{Status: s}
	}
	return status, nil
}

// InvalidStatusError ошибка неизвестного статуса
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return "unknown booking status: " + e.Status
}
