package venueservice

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден в venue-сервисе
	ErrCourtNotFound = errors.New("venueservice: court not found")

	// ErrInvalidResponse возвращается при некорректном ответе venue-сервиса
	ErrInvalidResponse = errors.New("venueservice: invalid response")

	// ErrServiceDegraded возвращается при недоступности venue-сервиса,
	// вызывающая сторона решает, можно ли продолжить на локальных данных
	ErrServiceDegraded = errors.New("venueservice: service degraded")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("venueservice: internal error")
)
