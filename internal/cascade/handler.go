package cascade

import (
	"context"
	"time"
)

// BookingCanceller каскадные точки входа lifecycle-слоя
type BookingCanceller interface {
	CancelAllForCourt(ctx context.Context, courtID int64) (int, error)
	CancelAllForVenue(ctx context.Context, venueID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Handler реагирует на удаление корта или площадки в venue-сервисе массовой
// отменой их бронирований. Для venue-сервиса вызов best-effort (его удаление
// не блокируется нашим сбоем), поэтому временные сбои хранилища мы обязаны
// повторить сами: активные бронирования на удаленном корте — это не косметика,
// а нарушение корректности.
type Handler struct {
	canceller  BookingCanceller
	attempts   int
	retryDelay time.Duration
	logger     Logger
}

// NewHandler создает новый каскадный обработчик
func NewHandler(canceller BookingCanceller, attempts int, retryDelay time.Duration, logger Logger) *Handler {
	if attempts < 1 {
		attempts = 1
	}
	return &Handler{
		canceller:  canceller,
		attempts:   attempts,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// CourtDeleted отменяет все бронирования удаленного корта
func (h *Handler) CourtDeleted(ctx context.Context, courtID int64) (int, error) {
	h.logger.Info("Cascade: court=%d deleted, cancelling bookings", courtID)
	return h.withRetry(ctx, func(ctx context.Context) (int, error) {
		return h.canceller.CancelAllForCourt(ctx, courtID)
	})
}

// VenueDeleted отменяет все бронирования удаленной площадки
func (h *Handler) VenueDeleted(ctx context.Context, venueID int64) (int, error) {
	h.logger.Info("Cascade: venue=%d deleted, cancelling bookings", venueID)
	return h.withRetry(ctx, func(ctx context.Context) (int, error) {
		return h.canceller.CancelAllForVenue(ctx, venueID)
	})
}

// withRetry выполняет каскадную отмену с ограниченным экспоненциальным повтором.
// Отмена идемпотентна, поэтому повтор после частичного применения безопасен:
// уже отмененные бронирования второй раз не считаются.
func (h *Handler) withRetry(ctx context.Context, fn func(ctx context.Context) (int, error)) (int, error) {
	var lastErr error

	delay := h.retryDelay
	for attempt := 1; attempt <= h.attempts; attempt++ {
		count, err := fn(ctx)
		if err == nil {
			h.logger.Info("Cascade: cancelled %d bookings", count)
			return count, nil
		}

		lastErr = err
		if attempt < h.attempts {
			h.logger.Warn("Cascade: attempt %d/%d failed: %v", attempt, h.attempts, err)
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	h.logger.Error("Cascade: giving up after %d attempts: %v", h.attempts, lastErr)
	return 0, lastErr
}
