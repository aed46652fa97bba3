package keyedmutex

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTimeout возвращается, когда блокировку не удалось взять за отведенное время
var ErrTimeout = errors.New("keyedmutex: lock acquisition timed out")

// Mutex набор независимых блокировок, адресуемых ключом.
// Блокировки разных ключей не конкурируют между собой. Ожидание ограничено
// таймаутом, бесконечного блокирования нет.
type Mutex struct {
	mu      sync.Mutex
	entries map[int64]*entry
	wait    time.Duration
}

type entry struct {
	sem  chan struct{}
	refs int
}

// New создает Mutex с указанным максимальным временем ожидания блокировки
func New(wait time.Duration) *Mutex {
	return &Mutex{
		entries: make(map[int64]*entry),
		wait:    wait,
	}
}

// Lock берет блокировку по ключу. Возвращает ErrTimeout, если она не освободилась
// за отведенное время, либо ошибку контекста при его отмене.
func (m *Mutex) Lock(ctx context.Context, key int64) error {
	e := m.acquireEntry(key)

	timer := time.NewTimer(m.wait)
	defer timer.Stop()

	select {
	case e.sem <- struct{}{}:
		return nil
	case <-timer.C:
		m.releaseEntry(key)
		return ErrTimeout
	case <-ctx.Done():
		m.releaseEntry(key)
		return ctx.Err()
	}
}

// Unlock освобождает блокировку по ключу. Вызывается только после успешного Lock.
func (m *Mutex) Unlock(key int64) {
	m.mu.Lock()
	e, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		panic("keyedmutex: unlock of unlocked key")
	}

	<-e.sem
	m.releaseEntry(key)
}

// acquireEntry возвращает entry ключа, создавая его при первом обращении.
// refs считает и ждущих, и держащего блокировку — entry удаляется, когда
// последний из них уходит.
func (m *Mutex) acquireEntry(key int64) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		m.entries[key] = e
	}
	e.refs++
	return e
}

func (m *Mutex) releaseEntry(key int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entries[key]
	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
}
