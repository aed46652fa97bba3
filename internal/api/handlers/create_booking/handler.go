package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SportZone-BookingService/internal/api/handlers"
	"github.com/m04kA/SportZone-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SportZone-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInterval    = "некорректный интервал бронирования: границы должны быть на начале часа, начало раньше конца и не в прошлом"
	msgInvalidAmount      = "сумма бронирования должна быть положительной"
	msgInvalidStatus      = "недопустимый начальный статус бронирования"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotConflict       = "выбранный временной слот уже занят"
	msgCourtBusy          = "корт сейчас обрабатывает другое бронирование, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid interval: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrInvalidAmount):
			h.logger.Warn("POST /bookings - Invalid amount: user_id=%d, amount=%f", userID, req.Amount)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, createBooking.ErrInvalidStatus):
			h.logger.Warn("POST /bookings - Invalid initial status: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotConflict), errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, court_id=%d, start=%s",
				userID, req.CourtID, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrCourtBusy):
			h.logger.Warn("POST /bookings - Court busy: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCourtBusy)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, court_id=%d, error=%v",
				userID, req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, court_id=%d",
		result.ID, userID, req.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
