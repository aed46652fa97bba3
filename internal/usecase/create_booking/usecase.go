package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SportZone-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SportZone-BookingService/pkg/keyedmutex"
)

// UseCase use case создания бронирования.
//
// Центральная гонка сервиса — между "проверить пересечения" и "записать
// бронирование": два конкурирующих запроса на один корт не должны оба увидеть
// свободный слот. Запись сериализуется по корту: блокировка корта держится на
// всём протяжении "проверка -> запись", сама пара выполняется в сериализуемой
// транзакции (FindOverlapping ... FOR UPDATE), а уникальность
// (court_id, start_time) в схеме — последняя линия обороны.
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

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, court=%d, venue=%d, slot=[%s, %s)",
		req.UserID, req.CourtID, req.VenueID,
		req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных — до блокировки
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	interval := domain.NewInterval(req.StartTime, req.EndTime)

	// 2. Сериализация записи по корту, ожидание ограничено таймаутом
	if err := uc.courtLocks.Lock(ctx, req.CourtID); err != nil {
		if errors.Is(err, keyedmutex.ErrTimeout) {
			uc.logger.Warn("CreateBooking: court=%d admission lock timed out", req.CourtID)
			return nil, ErrCourtBusy
		}
		uc.logger.Error("CreateBooking: court=%d lock failed: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: lock failed: %v", ErrInternal, err)
	}
	defer uc.courtLocks.Unlock(req.CourtID)

	var result *domain.Booking

	// 3. Проверка пересечений и запись — одна сериализуемая транзакция
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		ok, err := uc.checker.Admissible(txCtx, req.CourtID, interval, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: admission check failed for court=%d: %v", req.CourtID, err)
			// Причина оборачивается через %w: serialization failure из репозитория
			// должен дойти до цикла повторов в transaction manager
			return fmt.Errorf("%w: admission check failed: %w", ErrInternal, err)
		}
		if !ok {
			uc.logger.Warn("CreateBooking: slot conflict on court=%d", req.CourtID)
			return ErrSlotConflict
		}

		booking := &domain.Booking{
			UserID:    req.UserID,
			CourtID:   req.CourtID,
			VenueID:   req.VenueID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Amount:    req.Amount,
			Status:    initialStatus(req.Status),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateSlot) {
				// Страховка хранилища сработала: конкурент успел первым
				uc.logger.Warn("CreateBooking: duplicate slot constraint on court=%d", req.CourtID)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", result.ID, result.Status)
	return fromDomain(result), nil
}
