package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, minute int) time.Time {
	return time.Date(2025, 6, 1, hour, minute, 0, 0, time.UTC)
}

func TestInterval_IsOrdered(t *testing.T) {
	assert.True(t, NewInterval(ts(10, 0), ts(11, 0)).IsOrdered())
	assert.False(t, NewInterval(ts(11, 0), ts(10, 0)).IsOrdered())
	assert.False(t, NewInterval(ts(10, 0), ts(10, 0)).IsOrdered())
}

func TestInterval_IsHourAligned(t *testing.T) {
	assert.True(t, NewInterval(ts(10, 0), ts(12, 0)).IsHourAligned())
	assert.False(t, NewInterval(ts(10, 30), ts(11, 30)).IsHourAligned())
	assert.False(t, NewInterval(ts(10, 0), ts(11, 15)).IsHourAligned())

	withSeconds := time.Date(2025, 6, 1, 10, 0, 30, 0, time.UTC)
	assert.False(t, NewInterval(withSeconds, ts(11, 0)).IsHourAligned())
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{"identical", NewInterval(ts(10, 0), ts(11, 0)), NewInterval(ts(10, 0), ts(11, 0)), true},
		{"partial overlap", NewInterval(ts(10, 0), ts(11, 0)), NewInterval(ts(10, 30), ts(11, 30)), true},
		{"contained", NewInterval(ts(9, 0), ts(12, 0)), NewInterval(ts(10, 0), ts(11, 0)), true},
		{"boundary touch", NewInterval(ts(9, 0), ts(10, 0)), NewInterval(ts(10, 0), ts(11, 0)), false},
		{"disjoint", NewInterval(ts(9, 0), ts(10, 0)), NewInterval(ts(11, 0), ts(12, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestInterval_Duration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, NewInterval(ts(10, 0), ts(12, 0)).Duration())
}

func TestBooking_StatusPredicates(t *testing.T) {
	b := &Booking{Status: StatusPending}
	assert.True(t, b.IsActive())
	assert.True(t, b.CanBeAmended())
	assert.False(t, b.IsTerminal())

	b.Status = StatusConfirmed
	assert.True(t, b.IsActive())
	assert.True(t, b.CanBeAmended())

	b.Status = StatusCompleted
	assert.True(t, b.IsActive()) // завершенное бронирование занимало слот
	assert.False(t, b.CanBeAmended())
	assert.True(t, b.IsTerminal())

	b.Status = StatusCancelled
	assert.False(t, b.IsActive())
	assert.False(t, b.CanBeAmended())
	assert.True(t, b.IsTerminal())
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusPending))
	assert.True(t, IsValidStatus(StatusCompleted))
	assert.False(t, IsValidStatus(BookingStatus("no_show")))
}
