package submit_complaint

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	submitComplaint "github.com/m04kA/SMC-ReservationService/internal/usecase/submit_complaint"
)

const (
	msgInvalidRequestBody = "укажите тип жалобы (до 50 символов) и описание (до 2000 символов)"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgSubmitted          = "жалоба отправлена"
)

type Handler struct {
	useCase SubmitComplaintUseCase
	logger  Logger
}

func NewHandler(useCase SubmitComplaintUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/complaints
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SubmitComplaintRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /complaints - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	complaint, err := h.useCase.Execute(r.Context(), &submitComplaint.Request{
		UserID:      userID,
		BookingID:   req.BookingID,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, submitComplaint.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		case errors.Is(err, submitComplaint.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, submitComplaint.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		default:
			if handlers.RespondRemoteError(w, err) {
				h.logger.Warn("POST /complaints - Remote failure: user_id=%d, error=%v", userID, err)
				return
			}
			h.logger.Error("POST /complaints - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /complaints - Complaint created: complaint_id=%d, user_id=%d", complaint.ID, userID)
	handlers.RespondWithMessage(w, http.StatusCreated, msgSubmitted, complaint)
}
