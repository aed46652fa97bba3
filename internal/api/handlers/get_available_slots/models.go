package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/SportZone-BookingService/internal/usecase/get_available_slots"
)

const dateFormat = "2006-01-02"

// SlotResponse часовой слот
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailableSlotsResponse сетка свободных слотов корта на день
type AvailableSlotsResponse struct {
	CourtID      int64          `json:"courtId"`
	Date         string         `json:"date"`
	PricePerHour float64        `json:"pricePerHour"`
	Slots        []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: slot.StartTime.Format(time.RFC3339),
			EndTime:   slot.EndTime.Format(time.RFC3339),
		})
	}

	return &AvailableSlotsResponse{
		CourtID:      resp.CourtID,
		Date:         resp.Date.Format(dateFormat),
		PricePerHour: resp.PricePerHour,
		Slots:        slots,
	}
}
