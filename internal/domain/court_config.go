package domain

import "time"

// Default operating window applied when a court has no stored config.
const (
	DefaultOpenHour  = 8
	DefaultCloseHour = 22
)

// CourtConfig holds the per-court schedule settings used when computing
// the availability grid: the daily operating window in whole hours and
// the price of a one-hour slot.
type CourtConfig struct {
	CourtID      int64
	OpenHour     int // first bookable hour, inclusive
	CloseHour    int // hour the court closes, exclusive
	PricePerHour float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultCourtConfig returns the config used for courts without a stored one.
func DefaultCourtConfig(courtID int64) *CourtConfig {
	return &CourtConfig{
		CourtID:   courtID,
		OpenHour:  DefaultOpenHour,
		CloseHour: DefaultCloseHour,
	}
}

// IsValid reports whether the operating window is a sane whole-hour range
// within a single day and the price is not negative.
func (c *CourtConfig) IsValid() bool {
	if c.OpenHour < 0 || c.CloseHour > 24 || c.OpenHour >= c.CloseHour {
		return false
	}
	return c.PricePerHour >= 0
}
