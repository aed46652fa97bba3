package amend_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SportZone-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SportZone-BookingService/pkg/keyedmutex"
)

// UseCase use case изменения бронирования: новый интервал проходит ту же
// проверку доступности, что и создание, но собственный прежний слот бронирования
// конфликтом не считается (excludeID).
type UseCase struct {
	bookingRepo  BookingRepository
	checker      AdmissionChecker
	courtLocks   CourtLocker
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	checker AdmissionChecker,
	courtLocks CourtLocker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		checker:      checker,
		courtLocks:   courtLocks,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case изменения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AmendBooking: id=%d, slot=[%s, %s), amount=%.2f",
		req.BookingID,
		req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("2006-01-02 15:04"),
		req.Amount)

	// 1. Валидация нового интервала и суммы — до блокировки
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("AmendBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем бронирование, чтобы узнать корт и проверить статус.
	// Статус перепроверяется внутри транзакции: между чтением и записью
	// бронирование могли отменить.
	booking, err := uc.loadAmendable(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	newInterval := domain.NewInterval(req.StartTime, req.EndTime)

	// 3. Сериализация записи по корту бронирования
	if err := uc.courtLocks.Lock(ctx, booking.CourtID); err != nil {
		if errors.Is(err, keyedmutex.ErrTimeout) {
			uc.logger.Warn("AmendBooking: court=%d admission lock timed out", booking.CourtID)
			return nil, ErrCourtBusy
		}
		uc.logger.Error("AmendBooking: court=%d lock failed: %v", booking.CourtID, err)
		return nil, fmt.Errorf("%w: lock failed: %v", ErrInternal, err)
	}
	defer uc.courtLocks.Unlock(booking.CourtID)

	var result *domain.Booking

	// 4. Перечитка, проверка пересечений и запись — одна сериализуемая транзакция
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.loadAmendable(txCtx, req.BookingID)
		if err != nil {
			return err
		}

		ok, err := uc.checker.Admissible(txCtx, current.CourtID, newInterval, &current.ID)
		if err != nil {
			uc.logger.Error("AmendBooking: admission check failed for court=%d: %v", current.CourtID, err)
			// Причина оборачивается через %w: serialization failure из репозитория
			// должен дойти до цикла повторов в transaction manager
			return fmt.Errorf("%w: admission check failed: %w", ErrInternal, err)
		}
		if !ok {
			uc.logger.Warn("AmendBooking: slot conflict on court=%d for booking id=%d", current.CourtID, current.ID)
			return ErrSlotConflict
		}

		current.StartTime = req.StartTime
		current.EndTime = req.EndTime
		current.Amount = req.Amount
		if req.Status != nil {
			current.Status = domain.BookingStatus(*req.Status)
		}

		if err := uc.bookingRepo.Update(txCtx, current); err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateSlot) {
				uc.logger.Warn("AmendBooking: duplicate slot constraint on court=%d", current.CourtID)
				return ErrSlotTaken
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("AmendBooking: failed to update booking id=%d: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		result = current
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AmendBooking: successfully amended booking id=%d, status=%s", result.ID, result.Status)
	return fromDomain(result), nil
}

// loadAmendable загружает бронирование и проверяет, что его еще можно менять
func (uc *UseCase) loadAmendable(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("AmendBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("AmendBooking: failed to load booking id=%d: %v", id, err)
		// loadAmendable вызывается и внутри транзакции — причина сохраняется в цепочке
		return nil, fmt.Errorf("%w: failed to load booking: %w", ErrInternal, err)
	}

	if !booking.CanBeAmended() {
		uc.logger.Warn("AmendBooking: booking id=%d is %s, cannot be amended", id, booking.Status)
		return nil, ErrInvalidTransition
	}

	return booking, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrBookingNotFound)
	}

	if req.Amount <= 0 {
		return ErrInvalidAmount
	}

	interval := domain.NewInterval(req.StartTime, req.EndTime)

	if interval.Start.IsZero() || interval.End.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInterval)
	}

	if !interval.IsOrdered() {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInterval)
	}

	if !interval.IsHourAligned() {
		return fmt.Errorf("%w: bookings must start and end on the hour", ErrInvalidInterval)
	}

	if interval.Start.Before(now) {
		return fmt.Errorf("%w: startTime must not be in the past", ErrInvalidInterval)
	}

	if req.Status != nil {
		switch domain.BookingStatus(*req.Status) {
		case domain.StatusPending, domain.StatusConfirmed:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
	}

	return nil
}
