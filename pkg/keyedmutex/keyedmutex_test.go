package keyedmutex

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlock(t *testing.T) {
	m := New(time.Second)

	require.NoError(t, m.Lock(context.Background(), 1))
	m.Unlock(1)

	require.NoError(t, m.Lock(context.Background(), 1))
	m.Unlock(1)
}

func TestLockTimeout(t *testing.T) {
	m := New(50 * time.Millisecond)

	require.NoError(t, m.Lock(context.Background(), 1))
	defer m.Unlock(1)

	err := m.Lock(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestDifferentKeysIndependent(t *testing.T) {
	m := New(50 * time.Millisecond)

	require.NoError(t, m.Lock(context.Background(), 1))
	defer m.Unlock(1)

	// Блокировка другого ключа берется сразу, несмотря на занятый ключ 1
	require.NoError(t, m.Lock(context.Background(), 2))
	m.Unlock(2)
}

func TestLockContextCancelled(t *testing.T) {
	m := New(time.Second)

	require.NoError(t, m.Lock(context.Background(), 1))
	defer m.Unlock(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Lock(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMutualExclusion(t *testing.T) {
	m := New(5 * time.Second)

	const goroutines = 20
	var counter int
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, m.Lock(context.Background(), 7))
			defer m.Unlock(7)

			// Гонка данных здесь была бы поймана go test -race
			counter++
		}()
	}

	wg.Wait()
	assert.Equal(t, goroutines, counter)
}

func TestEntriesCleanedUp(t *testing.T) {
	m := New(time.Second)

	require.NoError(t, m.Lock(context.Background(), 42))
	m.Unlock(42)

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.entries)
}
