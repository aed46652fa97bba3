package amend_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("amend_booking: booking not found")

	// ErrInvalidTransition возвращается при попытке изменить бронирование
	// в терминальном статусе (cancelled, completed)
	ErrInvalidTransition = errors.New("amend_booking: booking can no longer be amended")

	// ErrInvalidInterval возвращается при некорректном новом интервале
	ErrInvalidInterval = errors.New("amend_booking: invalid booking interval")

	// ErrInvalidAmount возвращается при неположительной сумме
	ErrInvalidAmount = errors.New("amend_booking: amount must be positive")

	// ErrInvalidStatus возвращается при недопустимом целевом статусе
	// (изменением можно выставить только pending или confirmed)
	ErrInvalidStatus = errors.New("amend_booking: invalid target status")

	// ErrSlotConflict возвращается, когда новый слот пересекается с чужим
	// активным бронированием
	ErrSlotConflict = errors.New("amend_booking: slot is already booked")

	// ErrSlotTaken возвращается, когда сработала уникальность (court_id, start_time)
	ErrSlotTaken = errors.New("amend_booking: slot taken (uniqueness constraint)")

	// ErrCourtBusy возвращается при таймауте ожидания блокировки корта
	ErrCourtBusy = errors.New("amend_booking: court admission is busy, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("amend_booking: internal error")
)
