package get_user_complaints

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service ComplaintService
	logger  Logger
}

func NewHandler(service ComplaintService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/complaints
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	authUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if authUserID != userID {
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	view, err := h.service.Complaints(r.Context(), userID)
	if err != nil {
		if handlers.RespondRemoteError(w, err) {
			h.logger.Warn("GET /users/{userId}/complaints - Remote failure: user_id=%d, error=%v", userID, err)
			return
		}
		h.logger.Error("GET /users/{userId}/complaints - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/complaints - user_id=%d, active=%d, resolved=%d",
		userID, len(view.Active), len(view.Resolved))
	handlers.RespondJSON(w, http.StatusOK, view)
}
