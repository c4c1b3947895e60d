package modify_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	modifyBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/modify_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса, даты ожидаются в формате YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotModify       = "бронирование не может быть изменено"
	msgInFlight           = "бронирование уже изменяется, дождитесь завершения"
	msgModified           = "бронирование изменено"
)

type Handler struct {
	useCase ModifyBookingUseCase
	logger  Logger
}

func NewHandler(useCase ModifyBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ModifyBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondDateViolations(w, err) {
			return
		}

		switch {
		case errors.Is(err, modifyBooking.ErrInFlight):
			handlers.RespondConflict(w, msgInFlight)

		case errors.Is(err, modifyBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, modifyBooking.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, modifyBooking.ErrNotActionable):
			handlers.RespondBadRequest(w, msgCannotModify)

		case errors.Is(err, modifyBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			if handlers.RespondRemoteError(w, err) {
				h.logger.Warn("PUT /bookings/{id} - Remote failure: booking_id=%d, error=%v", bookingID, err)
				return
			}
			h.logger.Error("PUT /bookings/{id} - Failed to modify booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking modified: booking_id=%d, user_id=%d", bookingID, userID)
	handlers.RespondWithMessage(w, http.StatusOK, msgModified, result)
}
