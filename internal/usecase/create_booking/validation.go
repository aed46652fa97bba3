package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Вызывается до взятия блокировки корта: некорректный запрос не должен
// стоить конкурентам ожидания.
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.Amount <= 0 {
		return ErrInvalidAmount
	}

	if err := validateInterval(domain.NewInterval(req.StartTime, req.EndTime), now); err != nil {
		return err
	}

	return validateInitialStatus(req.Status)
}

// validateInterval проверяет интервал бронирования: упорядоченность,
// выравнивание по началу часа, начало не в прошлом
func validateInterval(interval domain.Interval, now time.Time) error {
	if interval.Start.IsZero() || interval.End.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInterval)
	}

	if !interval.IsOrdered() {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInterval)
	}

	if !interval.IsHourAligned() {
		return fmt.Errorf("%w: bookings must start and end on the hour", ErrInvalidInterval)
	}

	if interval.Start.Before(now) {
		return fmt.Errorf("%w: startTime must not be in the past", ErrInvalidInterval)
	}

	return nil
}

// validateInitialStatus допускает только pending (по умолчанию) и confirmed
func validateInitialStatus(status *string) error {
	if status == nil {
		return nil
	}

	switch domain.BookingStatus(*status) {
	case domain.StatusPending, domain.StatusConfirmed:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *status)
	}
}

// initialStatus возвращает статус создаваемого бронирования
func initialStatus(status *string) domain.BookingStatus {
	if status == nil {
		return domain.StatusPending
	}
	return domain.BookingStatus(*status)
}
