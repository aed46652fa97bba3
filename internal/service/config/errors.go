package config

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден в venue-сервисе
	ErrCourtNotFound = errors.New("config service: court not found")

	// ErrInvalidConfig возвращается при некорректном окне работы или цене
	ErrInvalidConfig = errors.New("config service: invalid court config")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("config service: internal error")
)
