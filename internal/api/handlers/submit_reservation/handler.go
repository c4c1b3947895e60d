package submit_reservation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	submitReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/submit_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgDraftNotFound       = "черновик не найден или истек, начните оформление заново"
	msgForbidden           = "доступ запрещен"
	msgNotReady            = "бронирование нельзя отправить на текущем шаге или оно уже отправляется"
	msgPaymentFailed       = "оплата не прошла, бронирование не создано"
	msgPaymentUnavailable  = "не удалось связаться с платежным сервисом, повторите попытку: повторная отправка не спишет деньги дважды"
	msgReservationRefunded = "не удалось создать бронирование, оплата возвращена"
	msgPartialCommit       = "оплата прошла, но бронирование не создано. Повторите отправку или обратитесь в поддержку, номер обращения: %s"
	msgBookingCreated      = "бронирование создано"
)

type Handler struct {
	useCase SubmitReservationUseCase
	logger  Logger
}

func NewHandler(useCase SubmitReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	draftID := mux.Vars(r)["draftId"]

	var req SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts/{id}/submit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitReservation.Request{
		DraftID:          draftID,
		UserID:           userID,
		AccountReference: req.AccountReference,
	})
	if err != nil {
		h.respondError(w, draftID, userID, err)
		return
	}

	h.logger.Info("POST /drafts/{id}/submit - Booking created: booking_id=%d, user_id=%d", result.Booking.ID, userID)
	handlers.RespondWithMessage(w, http.StatusCreated, msgBookingCreated, result)
}

func (h *Handler) respondError(w http.ResponseWriter, draftID string, userID int64, err error) {
	if handlers.RespondDateViolations(w, err) {
		return
	}

	var pce *submitReservation.PartialCommitError
	switch {
	case errors.As(err, &pce):
		h.logger.Error("POST /drafts/{id}/submit - Partial commit: draft_id=%s, user_id=%d, record_id=%s, key=%s",
			draftID, userID, pce.RecordID, pce.IdempotencyKey)
		ref := pce.RecordID
		if ref == "" {
			ref = pce.IdempotencyKey
		}
		handlers.RespondError(w, http.StatusBadGateway, fmt.Sprintf(msgPartialCommit, ref))

	case errors.Is(err, submitReservation.ErrReservationRefunded):
		h.logger.Warn("POST /drafts/{id}/submit - Refunded: draft_id=%s: %v", draftID, err)
		handlers.RespondConflict(w, msgReservationRefunded)

	case errors.Is(err, submitReservation.ErrPaymentFailed):
		h.logger.Warn("POST /drafts/{id}/submit - Payment failed: draft_id=%s: %v", draftID, err)
		handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentFailed)

	case errors.Is(err, submitReservation.ErrPaymentUnavailable):
		h.logger.Warn("POST /drafts/{id}/submit - Payment unavailable: draft_id=%s: %v", draftID, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgPaymentUnavailable)

	case errors.Is(err, submitReservation.ErrDraftNotFound):
		handlers.RespondNotFound(w, msgDraftNotFound)

	case errors.Is(err, submitReservation.ErrAccessDenied):
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, submitReservation.ErrNotReady):
		handlers.RespondConflict(w, msgNotReady)

	case errors.Is(err, submitReservation.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("POST /drafts/{id}/submit - Failed: draft_id=%s, user_id=%d, error=%v", draftID, userID, err)
		handlers.RespondInternalError(w)
	}
}
