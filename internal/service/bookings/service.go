package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SportZone-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SportZone-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение, отмена, каскадная отмена
// и переход статусов (оплата, завершение по времени).
// Создание и изменение слота живут в usecase-слое, где действует протокол
// "блокировка корта + сериализуемая транзакция".
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя постранично,
// отсортированную по времени начала (сначала новые)
func (s *Service) GetUserBookings(ctx context.Context, userID int64, page, size int) (*models.BookingPageResponse, error) {
	if page < 0 {
		page = domain.DefaultPage
	}
	if size <= 0 {
		size = domain.DefaultPageSize
	}
	if size > domain.MaxPageSize {
		size = domain.MaxPageSize
	}

	s.logger.Info("GetUserBookings: fetching bookings for user=%d, page=%d, size=%d", userID, page, size)

	bookings, total, err := s.bookingRepo.GetByUserID(ctx, userID, page, size)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	list := models.FromDomainBookingList(bookings)
	return &models.BookingPageResponse{
		Bookings: list.Bookings,
		Page:     page,
		Size:     size,
		Total:    total,
	}, nil
}

// GetCourtBookings получает все бронирования корта
func (s *Service) GetCourtBookings(ctx context.Context, courtID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetCourtBookings: fetching bookings for court=%d", courtID)

	bookings, err := s.bookingRepo.GetByCourtID(ctx, courtID)
	if err != nil {
		s.logger.Error("GetCourtBookings: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: GetCourtBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetVenueBookings получает все бронирования площадки
func (s *Service) GetVenueBookings(ctx context.Context, venueID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetVenueBookings: fetching bookings for venue=%d", venueID)

	bookings, err := s.bookingRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование. Идемпотентна: повторная отмена возвращает
// бронирование в его терминальном состоянии без ошибки. Блокировка корта не нужна —
// отмена только освобождает слот и новых конфликтов создать не может.
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.IsCancelled() {
		s.logger.Info("Cancel: booking id=%d already cancelled", id)
		return models.FromDomainBooking(booking), nil
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCancelled

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// CancelAllForCourt отменяет все активные бронирования корта.
// Используется каскадным обработчиком при удалении корта. Пустой набор —
// не ошибка. Возвращает количество фактически отмененных бронирований.
func (s *Service) CancelAllForCourt(ctx context.Context, courtID int64) (int, error) {
	s.logger.Info("CancelAllForCourt: cancelling bookings for court=%d", courtID)

	bookings, err := s.bookingRepo.GetByCourtID(ctx, courtID)
	if err != nil {
		s.logger.Error("CancelAllForCourt: repository error for court=%d: %v", courtID, err)
		return 0, fmt.Errorf("%w: CancelAllForCourt - repository error: %v", ErrInternal, err)
	}

	return s.cancelAll(ctx, bookings)
}

// CancelAllForVenue отменяет все активные бронирования площадки.
// Используется каскадным обработчиком при удалении площадки.
func (s *Service) CancelAllForVenue(ctx context.Context, venueID int64) (int, error) {
	s.logger.Info("CancelAllForVenue: cancelling bookings for venue=%d", venueID)

	bookings, err := s.bookingRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		s.logger.Error("CancelAllForVenue: repository error for venue=%d: %v", venueID, err)
		return 0, fmt.Errorf("%w: CancelAllForVenue - repository error: %v", ErrInternal, err)
	}

	return s.cancelAll(ctx, bookings)
}

// ApplyPaymentStatus применяет статус от платежного сервиса: pending -> confirmed
// при успешной оплате, pending -> cancelled при неуспешной. Единственный внешний
// писатель статуса помимо отмены и sweeper'а.
func (s *Service) ApplyPaymentStatus(ctx context.Context, id int64, status string) (*models.BookingResponse, error) {
	s.logger.Info("ApplyPaymentStatus: booking id=%d, status=%s", id, status)

	newStatus, err := models.ToDomainBookingStatus(status)
	if err != nil {
		s.logger.Warn("ApplyPaymentStatus: invalid status=%s for booking id=%d", status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	if newStatus != domain.StatusConfirmed && newStatus != domain.StatusCancelled {
		s.logger.Warn("ApplyPaymentStatus: status=%s is not a payment outcome for booking id=%d", status, id)
		return nil, ErrInvalidTransition
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("ApplyPaymentStatus: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("ApplyPaymentStatus: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ApplyPaymentStatus - repository error: %v", ErrInternal, err)
	}

	if booking.Status != domain.StatusPending {
		s.logger.Warn("ApplyPaymentStatus: booking id=%d is %s, not pending", id, booking.Status)
		return nil, ErrInvalidTransition
	}

	// Условный переход: проигрываем конкурирующей отмене, а не затираем её
	updated, err := s.bookingRepo.UpdateStatusIf(ctx, id, domain.StatusPending, newStatus)
	if err != nil {
		s.logger.Error("ApplyPaymentStatus: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ApplyPaymentStatus - repository error: %v", ErrInternal, err)
	}
	if !updated {
		s.logger.Warn("ApplyPaymentStatus: booking id=%d left pending concurrently", id)
		return nil, ErrInvalidTransition
	}

	booking.Status = newStatus

	s.logger.Info("ApplyPaymentStatus: booking id=%d moved to %s", id, newStatus)
	return models.FromDomainBooking(booking), nil
}

// CompleteExpired переводит confirmed-бронирования, закончившиеся до now,
// в статус completed. Переход условный ("completed WHERE status = confirmed"):
// конкурирующая отмена, успевшая первой, выигрывает и не воскрешается.
// Возвращает ID завершенных бронирований. Единичная ошибка не прерывает проход.
func (s *Service) CompleteExpired(ctx context.Context, now time.Time) ([]int64, error) {
	expired, err := s.bookingRepo.GetByStatusBefore(ctx, domain.StatusConfirmed, now)
	if err != nil {
		return nil, fmt.Errorf("%w: CompleteExpired - repository error: %v", ErrInternal, err)
	}

	completed := make([]int64, 0, len(expired))
	for _, b := range expired {
		updated, err := s.bookingRepo.UpdateStatusIf(ctx, b.ID, domain.StatusConfirmed, domain.StatusCompleted)
		if err != nil {
			s.logger.Error("CompleteExpired: failed to complete booking id=%d: %v", b.ID, err)
			continue
		}
		if !updated {
			// Бронирование отменили, пока шел проход
			s.logger.Info("CompleteExpired: booking id=%d no longer confirmed, skipped", b.ID)
			continue
		}
		completed = append(completed, b.ID)
	}

	if len(completed) > 0 {
		s.logger.Info("CompleteExpired: completed %d bookings", len(completed))
	}

	return completed, nil
}

// cancelAll отменяет активные бронирования из набора одним bulk-обновлением.
// Уже отмененные пропускаются (идемпотентность каскада).
func (s *Service) cancelAll(ctx context.Context, bookings []*domain.Booking) (int, error) {
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			ids = append(ids, b.ID)
		}
	}

	if len(ids) == 0 {
		s.logger.Info("cancelAll: nothing to cancel")
		return 0, nil
	}

	updated, err := s.bookingRepo.BulkUpdateStatus(ctx, ids, domain.StatusCancelled)
	if err != nil {
		s.logger.Error("cancelAll: bulk update failed: %v", err)
		return 0, fmt.Errorf("%w: cancelAll - repository error: %v", ErrInternal, err)
	}

	if len(updated) != len(ids) {
		s.logger.Warn("cancelAll: requested %d cancellations, applied %d", len(ids), len(updated))
	} else {
		s.logger.Info("cancelAll: cancelled %d bookings", len(updated))
	}

	return len(updated), nil
}
