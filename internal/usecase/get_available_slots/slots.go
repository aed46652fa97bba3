package get_available_slots

import (
	"time"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
)

// buildFreeSlots строит сетку свободных часовых слотов на день.
// Слот попадает в результат, если он внутри окна работы корта, не начался
// раньше now и не пересекается ни с одним активным бронированием.
// Граница "конец одного — начало другого" пересечением не считается.
func buildFreeSlots(
	day time.Time,
	openHour, closeHour int,
	bookings []*domain.Booking,
	now time.Time,
) []Slot {
	slots := make([]Slot, 0, closeHour-openHour)

	for hour := openHour; hour < closeHour; hour++ {
		start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
		end := start.Add(time.Hour)

		if start.Before(now) {
			continue
		}

		slot := domain.Interval{Start: start, End: end}
		if hasOverlap(slot, bookings) {
			continue
		}

		slots = append(slots, Slot{StartTime: start, EndTime: end})
	}

	return slots
}

func hasOverlap(slot domain.Interval, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if slot.Overlaps(b.Interval()) {
			return true
		}
	}
	return false
}
