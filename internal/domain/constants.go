package domain

// Pagination defaults for user booking history
const (
	DefaultPage     = 0
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// InactiveStatuses список статусов, не занимающих слот.
// Используется при поиске пересекающихся бронирований.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов, занимающих слот.
// Единственный источник истины для Booking.IsActive.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
