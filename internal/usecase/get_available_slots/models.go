package get_available_slots

import "time"

// Request запрос сетки доступных слотов корта на день
type Request struct {
	CourtID int64
	Date    time.Time // день, время внутри дня игнорируется
}

// Slot часовой слот корта
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}

// Response сетка свободных часовых слотов на день
type Response struct {
	CourtID      int64
	Date         time.Time
	PricePerHour float64
	Slots        []Slot
}
