package admission

import (
	"context"
	"fmt"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
)

// Checker решает, можно ли занять слот на корте.
// Чистая функция поверх репозитория: сам по себе Checker не дает гарантий
// конкурентности, атомарность обеспечивает вызывающий usecase (блокировка корта +
// сериализуемая транзакция).
type Checker struct {
	bookingRepo BookingRepository
}

// NewChecker создает новый экземпляр Checker
func NewChecker(bookingRepo BookingRepository) *Checker {
	return &Checker{bookingRepo: bookingRepo}
}

// Admissible возвращает true, если интервал на корте свободен: ни одно
// неотмененное бронирование с ним не пересекается. excludeID исключает из
// рассмотрения изменяемое бронирование, чтобы оно не конфликтовало со своим
// же прежним слотом.
func (c *Checker) Admissible(ctx context.Context, courtID int64, interval domain.Interval, excludeID *int64) (bool, error) {
	overlapping, err := c.bookingRepo.FindOverlapping(ctx, courtID, interval, domain.InactiveStatuses)
	if err != nil {
		return false, fmt.Errorf("admission: failed to find overlapping bookings: %w", err)
	}

	for _, b := range overlapping {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		return false, nil
	}

	return true, nil
}
