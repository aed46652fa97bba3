package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeCompleter struct {
	mu        sync.Mutex
	calls     int
	failFirst int
	completed []int64
}

func (f *fakeCompleter) CompleteExpired(_ context.Context, _ time.Time) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failFirst {
		return nil, errors.New("storage unavailable")
	}
	return f.completed, nil
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSweeper_TicksUntilContextCancelled(t *testing.T) {
	completer := &fakeCompleter{completed: []int64{1}}
	s := New(completer, 20*time.Millisecond, 1, time.Millisecond, nopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, completer.callCount(), 3)
}

func TestSweeper_RetriesTransientFailure(t *testing.T) {
	completer := &fakeCompleter{failFirst: 2}
	s := New(completer, 30*time.Millisecond, 3, time.Millisecond, nopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	// Один тик: две неудачные попытки плюс успешная
	assert.GreaterOrEqual(t, completer.callCount(), 3)
}

func TestSweeper_StopsOnContextCancel(t *testing.T) {
	completer := &fakeCompleter{}
	s := New(completer, time.Second, 1, time.Millisecond, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}

func TestSweeper_PersistentFailureDoesNotPanic(t *testing.T) {
	completer := &fakeCompleter{failFirst: 1 << 30}
	s := New(completer, 20*time.Millisecond, 2, time.Millisecond, nopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()

	// Постоянный сбой хранилища: циклу достаточно не упасть
	s.Start(ctx)

	assert.GreaterOrEqual(t, completer.callCount(), 2)
}
