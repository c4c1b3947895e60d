package rate_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	rateBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/rate_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "оценка должна быть от 1 до 5, комментарий не длиннее 1000 символов"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotRateable        = "оценить можно только завершенное проживание"
	msgAlreadyRated       = "бронирование уже оценено"
	msgRated              = "спасибо за оценку"
)

type Handler struct {
	useCase RateBookingUseCase
	logger  Logger
}

func NewHandler(useCase RateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/rating
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

	var req RateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/rating - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.useCase.Execute(r.Context(), &rateBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Score:     req.Score,
		Comment:   req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, rateBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		case errors.Is(err, rateBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, rateBooking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, rateBooking.ErrNotRateable):
			handlers.RespondBadRequest(w, msgNotRateable)
		case errors.Is(err, rateBooking.ErrAlreadyRated):
			handlers.RespondConflict(w, msgAlreadyRated)
		default:
			if handlers.RespondRemoteError(w, err) {
				h.logger.Warn("POST /bookings/{id}/rating - Remote failure: booking_id=%d, error=%v", bookingID, err)
				return
			}
			h.logger.Error("POST /bookings/{id}/rating - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/rating - Booking rated: booking_id=%d, score=%d", bookingID, req.Score)
	handlers.RespondWithMessage(w, http.StatusCreated, msgRated, nil)
}
