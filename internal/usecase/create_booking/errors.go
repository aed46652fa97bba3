package create_booking

import "errors"

var (
	// ErrInvalidInterval возвращается при некорректном интервале:
	// start >= end, границы не на начале часа, или начало в прошлом
	ErrInvalidInterval = errors.New("create_booking: invalid booking interval")

	// ErrInvalidAmount возвращается при неположительной сумме
	ErrInvalidAmount = errors.New("create_booking: amount must be positive")

	// ErrInvalidStatus возвращается при недопустимом начальном статусе
	// (допустимы только pending и confirmed)
	ErrInvalidStatus = errors.New("create_booking: invalid initial status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotConflict возвращается, когда слот пересекается с активным бронированием.
	// Для клиента это бизнес-исход ("выберите другое время"), а не временный сбой.
	ErrSlotConflict = errors.New("create_booking: slot is already booked")

	// ErrSlotTaken возвращается, когда сработала уникальность (court_id, start_time) —
	// страховка хранилища. Обрабатывается так же, как ErrSlotConflict.
	ErrSlotTaken = errors.New("create_booking: slot taken (uniqueness constraint)")

	// ErrCourtBusy возвращается, когда блокировку корта не удалось взять за отведенное
	// время. Клиент может безопасно повторить запрос с backoff.
	ErrCourtBusy = errors.New("create_booking: court admission is busy, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
