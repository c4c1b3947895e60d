package reconciliation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reconcile"
)

const (
	msgInvalidQuery       = "некорректные параметры status, limit или offset"
	msgInvalidRequestBody = "статус должен быть resolved или refunded"
	msgRecordNotFound     = "запись сверки не найдена"
	msgAlreadyClosed      = "запись сверки уже закрыта"
	msgResolved           = "запись сверки закрыта"
)

type Handler struct {
	useCase ReconcileUseCase
	logger  Logger
}

func NewHandler(useCase ReconcileUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// List GET /api/v1/reconciliation/partial-commits?status=open&limit=50&offset=0
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, err := parseUint(query.Get("limit"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	offset, err := parseUint(query.Get("offset"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	records, err := h.useCase.List(r.Context(), &reconcile.ListRequest{
		Status: query.Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		if errors.Is(err, reconcile.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /reconciliation/partial-commits - Failed to list records: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, records)
}

// Resolve PATCH /api/v1/reconciliation/partial-commits/{recordId}/resolve
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	recordID := mux.Vars(r)["recordId"]

	var req ResolveRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	record, err := h.useCase.Resolve(r.Context(), &reconcile.ResolveRequest{
		RecordID: recordID,
		Status:   req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, reconcile.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		case errors.Is(err, reconcile.ErrRecordNotFound):
			handlers.RespondNotFound(w, msgRecordNotFound)
		case errors.Is(err, reconcile.ErrAlreadyClosed):
			handlers.RespondConflict(w, msgAlreadyClosed)
		default:
			h.logger.Error("PATCH /reconciliation/partial-commits/{id}/resolve - Failed: record_id=%s, error=%v", recordID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reconciliation/partial-commits/{id}/resolve - Record closed: record_id=%s, status=%s", recordID, record.Status)
	handlers.RespondWithMessage(w, http.StatusOK, msgResolved, record)
}

func parseUint(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}
