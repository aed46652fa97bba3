package cascade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCanceller struct {
	courtCalls int
	venueCalls int
	failTimes  int
	count      int
}

func (f *fakeCanceller) CancelAllForCourt(_ context.Context, _ int64) (int, error) {
	f.courtCalls++
	if f.courtCalls <= f.failTimes {
		return 0, errors.New("storage unavailable")
	}
	return f.count, nil
}

func (f *fakeCanceller) CancelAllForVenue(_ context.Context, _ int64) (int, error) {
	f.venueCalls++
	if f.venueCalls <= f.failTimes {
		return 0, errors.New("storage unavailable")
	}
	return f.count, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestCourtDeleted_Succeeds(t *testing.T) {
	canceller := &fakeCanceller{count: 3}
	h := NewHandler(canceller, 3, time.Millisecond, nopLogger{})

	count, err := h.CourtDeleted(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, canceller.courtCalls)
}

func TestVenueDeleted_RetriesTransientFailure(t *testing.T) {
	canceller := &fakeCanceller{count: 5, failTimes: 2}
	h := NewHandler(canceller, 3, time.Millisecond, nopLogger{})

	count, err := h.VenueDeleted(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.Equal(t, 3, canceller.venueCalls)
}

func TestCourtDeleted_GivesUpAfterAttempts(t *testing.T) {
	canceller := &fakeCanceller{failTimes: 100}
	h := NewHandler(canceller, 3, time.Millisecond, nopLogger{})

	_, err := h.CourtDeleted(context.Background(), 10)

	require.Error(t, err)
	assert.Equal(t, 3, canceller.courtCalls)
}

func TestCourtDeleted_StopsOnContextCancel(t *testing.T) {
	canceller := &fakeCanceller{failTimes: 100}
	h := NewHandler(canceller, 5, 100*time.Millisecond, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.CourtDeleted(ctx, 10)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, canceller.courtCalls)
}
