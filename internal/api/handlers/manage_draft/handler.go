package manage_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	manageDraft "github.com/m04kA/SMC-ReservationService/internal/usecase/manage_draft"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMissingDraftID     = "отсутствует ID черновика"
	msgPropertyNotFound   = "объект не найден"
	msgDraftNotFound      = "черновик не найден или истек, начните оформление заново"
	msgForbidden          = "доступ запрещен"
	msgWrongStep          = "действие недоступно на текущем шаге оформления"
	msgDraftBusy          = "бронирование уже отправляется, дождитесь результата"
	msgDraftAborted       = "оформление отменено"
)

// Handler шаги мастера оформления бронирования
type Handler struct {
	useCase ManageDraftUseCase
	logger  Logger
}

func NewHandler(useCase ManageDraftUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Start POST /api/v1/drafts
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req StartDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	draft, err := h.useCase.Start(r.Context(), &manageDraft.StartRequest{UserID: userID, PropertyID: req.PropertyID})
	if err != nil {
		h.respondError(w, "POST /drafts", err)
		return
	}

	h.logger.Info("POST /drafts - Draft started: draft_id=%s, user_id=%d, property_id=%d", draft.ID, userID, req.PropertyID)
	handlers.RespondJSON(w, http.StatusCreated, draft)
}

// Get GET /api/v1/drafts/{draftId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	draftID, userID, ok := h.ids(w, r)
	if !ok {
		return
	}

	draft, err := h.useCase.Get(r.Context(), draftID, userID)
	if err != nil {
		h.respondError(w, "GET /drafts/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, draft)
}

// SetDates PUT /api/v1/drafts/{draftId}/dates
func (h *Handler) SetDates(w http.ResponseWriter, r *http.Request) {
	draftID, userID, ok := h.ids(w, r)
	if !ok {
		return
	}

	var req DatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /drafts/{id}/dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	checkIn, errIn := domain.ParseDate(req.CheckIn)
	checkOut, errOut := domain.ParseDate(req.CheckOut)
	if errIn != nil || errOut != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	draft, err := h.useCase.SetDates(r.Context(), &manageDraft.DatesRequest{
		DraftID:  draftID,
		UserID:   userID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		h.respondError(w, "PUT /drafts/{id}/dates", err)
		return
	}

	h.logger.Info("PUT /drafts/{id}/dates - Dates accepted: draft_id=%s, nights=%d", draftID, draft.Nights)
	handlers.RespondJSON(w, http.StatusOK, draft)
}

// SetAddons PUT /api/v1/drafts/{draftId}/addons
func (h *Handler) SetAddons(w http.ResponseWriter, r *http.Request) {
	draftID, userID, ok := h.ids(w, r)
	if !ok {
		return
	}

	var req AddonsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /drafts/{id}/addons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	draft, err := h.useCase.SetAddons(r.Context(), &manageDraft.AddonsRequest{
		DraftID: draftID,
		UserID:  userID,
		Addons:  domain.Addons{ExtraBedding: req.ExtraBedding, DeepClean: req.DeepClean},
	})
	if err != nil {
		h.respondError(w, "PUT /drafts/{id}/addons", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, draft)
}

// Back POST /api/v1/drafts/{draftId}/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	draftID, userID, ok := h.ids(w, r)
	if !ok {
		return
	}

	draft, err := h.useCase.Back(r.Context(), draftID, userID)
	if err != nil {
		h.respondError(w, "POST /drafts/{id}/back", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, draft)
}

// Abort DELETE /api/v1/drafts/{draftId}
func (h *Handler) Abort(w http.ResponseWriter, r *http.Request) {
	draftID, userID, ok := h.ids(w, r)
	if !ok {
		return
	}

	if err := h.useCase.Abort(r.Context(), draftID, userID); err != nil {
		h.respondError(w, "DELETE /drafts/{id}", err)
		return
	}

	h.logger.Info("DELETE /drafts/{id} - Draft aborted: draft_id=%s, user_id=%d", draftID, userID)
	handlers.RespondWithMessage(w, http.StatusOK, msgDraftAborted, nil)
}

func (h *Handler) ids(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return "", 0, false
	}

	draftID := mux.Vars(r)["draftId"]
	if draftID == "" {
		handlers.RespondBadRequest(w, msgMissingDraftID)
		return "", 0, false
	}
	return draftID, userID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	if handlers.RespondDateViolations(w, err) {
		h.logger.Warn("%s - Dates rejected: %v", route, err)
		return
	}

	switch {
	case errors.Is(err, manageDraft.ErrPropertyNotFound):
		handlers.RespondNotFound(w, msgPropertyNotFound)
	case errors.Is(err, manageDraft.ErrDraftNotFound):
		handlers.RespondNotFound(w, msgDraftNotFound)
	case errors.Is(err, manageDraft.ErrAccessDenied):
		handlers.RespondForbidden(w, msgForbidden)
	case errors.Is(err, manageDraft.ErrWrongStep):
		handlers.RespondConflict(w, msgWrongStep)
	case errors.Is(err, manageDraft.ErrDraftBusy):
		handlers.RespondConflict(w, msgDraftBusy)
	case errors.Is(err, manageDraft.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
	default:
		if handlers.RespondRemoteError(w, err) {
			h.logger.Warn("%s - Remote failure: %v", route, err)
			return
		}
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
