package amend_booking

import (
	"context"
	"time"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// AdmissionChecker интерфейс проверки доступности слота
type AdmissionChecker interface {
	Admissible(ctx context.Context, courtID int64, interval domain.Interval, excludeID *int64) (bool, error)
}

// CourtLocker блокировка корта, общая с create_booking: изменение слота —
// та же проверка и запись, что и создание
type CourtLocker interface {
	Lock(ctx context.Context, courtID int64) error
	Unlock(courtID int64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
