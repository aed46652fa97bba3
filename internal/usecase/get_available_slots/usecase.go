package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
)

// UseCase сетка свободных часовых слотов корта на день.
// Ответ советующий, а не резервирующий: гонку с конкурирующим созданием
// разрешает проверка при создании, слот может быть занят между показом и
// попыткой бронирования.
type UseCase struct {
	bookingRepo   BookingRepository
	configService ConfigService
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configService ConfigService,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		configService: configService,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute возвращает свободные часовые слоты корта на указанный день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	config, err := uc.configService.GetCourtConfig(ctx, req.CourtID)
	if err != nil {
		uc.logger.Error("Execute: failed to get config for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: Execute - config service error: %v", ErrInternal, err)
	}

	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	dayInterval := domain.Interval{
		Start: day,
		End:   day.Add(24 * time.Hour),
	}

	bookings, err := uc.bookingRepo.FindOverlapping(ctx, req.CourtID, dayInterval, domain.InactiveStatuses)
	if err != nil {
		uc.logger.Error("Execute: failed to load bookings for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: Execute - repository error: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	slots := buildFreeSlots(day, config.OpenHour, config.CloseHour, bookings, now)

	uc.logger.Info("Execute: court=%d, date=%s, free_slots=%d",
		req.CourtID, day.Format("2006-01-02"), len(slots))

	return &Response{
		CourtID:      req.CourtID,
		Date:         day,
		PricePerHour: config.PricePerHour,
		Slots:        slots,
	}, nil
}

func validateRequest(req *Request) error {
	if req == nil {
		return ErrInvalidInput
	}
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: court id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
