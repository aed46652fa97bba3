package sweeper

import (
	"context"
	"time"
)

// BookingCompleter переводит просроченные confirmed-бронирования в completed
type BookingCompleter interface {
	CompleteExpired(ctx context.Context, now time.Time) ([]int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper фоновый процесс, раз в интервал переводящий confirmed-бронирования
// с прошедшим end_time в completed. Тик выполняется синхронно в цикле, поэтому
// два тика никогда не идут одновременно: пока тик в работе, следующий не стартует.
type Sweeper struct {
	completer  BookingCompleter
	interval   time.Duration
	attempts   int
	retryDelay time.Duration
	logger     Logger
}

// New создает новый экземпляр Sweeper
func New(completer BookingCompleter, interval time.Duration, attempts int, retryDelay time.Duration, logger Logger) *Sweeper {
	if attempts < 1 {
		attempts = 1
	}
	return &Sweeper{
		completer:  completer,
		interval:   interval,
		attempts:   attempts,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// Start запускает цикл и блокируется до отмены контекста
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Sweeper: started, interval=%s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper: stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick выполняет один проход с ограниченным повтором временных сбоев хранилища.
// Постоянный сбой логируется и ждет следующего тика — процесс не падает.
func (s *Sweeper) tick(ctx context.Context) {
	var lastErr error

	for attempt := 1; attempt <= s.attempts; attempt++ {
		completed, err := s.completer.CompleteExpired(ctx, time.Now())
		if err == nil {
			for _, id := range completed {
				s.logger.Info("Sweeper: booking id=%d completed", id)
			}
			return
		}

		lastErr = err
		if attempt < s.attempts {
			s.logger.Warn("Sweeper: sweep attempt %d/%d failed: %v", attempt, s.attempts, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.retryDelay * time.Duration(attempt)):
			}
		}
	}

	s.logger.Error("Sweeper: sweep failed after %d attempts: %v", s.attempts, lastErr)
}
