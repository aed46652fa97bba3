package amend_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SportZone-BookingService/internal/api/handlers"
	"github.com/m04kA/SportZone-BookingService/internal/api/middleware"
	"github.com/m04kA/SportZone-BookingService/internal/service/bookings"
	amendBooking "github.com/m04kA/SportZone-BookingService/internal/usecase/amend_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "бронирование не найдено"
	msgInvalidTransition  = "бронирование уже завершено или отменено и не может быть изменено"
	msgInvalidInterval    = "некорректный интервал бронирования: границы должны быть на начале часа, начало раньше конца и не в прошлом"
	msgInvalidAmount      = "сумма бронирования должна быть положительной"
	msgInvalidStatus      = "недопустимый целевой статус бронирования"
	msgSlotConflict       = "выбранный временной слот уже занят"
	msgCourtBusy          = "корт сейчас обрабатывает другое бронирование, повторите запрос"
)

type Handler struct {
	useCase AmendBookingUseCase
	service BookingService
	logger  Logger
}

func NewHandler(useCase AmendBookingUseCase, service BookingService, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AmendBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Проверяем владельца до запуска протокола изменения
	existing, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to load booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if existing.UserID != userID {
		h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, amendBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, amendBooking.ErrInvalidTransition):
			h.logger.Warn("PUT /bookings/{id} - Booking not amendable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, amendBooking.ErrInvalidInterval):
			h.logger.Warn("PUT /bookings/{id} - Invalid interval: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, amendBooking.ErrInvalidAmount):
			h.logger.Warn("PUT /bookings/{id} - Invalid amount: booking_id=%d, amount=%f", bookingID, req.Amount)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, amendBooking.ErrInvalidStatus):
			h.logger.Warn("PUT /bookings/{id} - Invalid target status: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, amendBooking.ErrSlotConflict), errors.Is(err, amendBooking.ErrSlotTaken):
			h.logger.Warn("PUT /bookings/{id} - Slot conflict: booking_id=%d, start=%s", bookingID, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, amendBooking.ErrCourtBusy):
			h.logger.Warn("PUT /bookings/{id} - Court busy: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCourtBusy)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to amend booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking amended successfully: booking_id=%d, user_id=%d",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
