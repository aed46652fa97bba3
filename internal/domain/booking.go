package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a court reservation in the system
type Booking struct {
	ID      int64
	UserID  int64
	CourtID int64
	VenueID int64

	StartTime time.Time
	EndTime   time.Time
	Amount    float64
	Status    BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the booked time range as a half-open interval
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// IsActive returns true if the booking still occupies its slot.
// Completed bookings count as active: their slot was taken.
func (b *Booking) IsActive() bool {
	for _, s := range ActiveStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsTerminal returns true if the booking can no longer be amended
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// CanBeAmended returns true if the booking time or amount may still change
func (b *Booking) CanBeAmended() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsValidStatus reports whether s is one of the known booking statuses
func IsValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}
