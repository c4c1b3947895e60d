package get_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getQuote "github.com/m04kA/SMC-ReservationService/internal/usecase/get_quote"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFlag       = "некорректное значение опции, ожидается true или false"
	msgPropertyNotFound  = "объект не найден"
	msgCatalogFailed     = "сервис каталога недоступен"
)

type Handler struct {
	useCase GetQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/quote
// Query params: checkin, checkout (YYYY-MM-DD), extraBedding, deepClean (bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathInt64(r, "propertyId")
	if err != nil {
		h.logger.Warn("GET /properties/{id}/quote - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	query := r.URL.Query()

	checkIn, err := handlers.ParseDate(query.Get("checkin"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	checkOut, err := handlers.ParseDate(query.Get("checkout"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	extraBedding, err := parseFlag(query.Get("extraBedding"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFlag)
		return
	}
	deepClean, err := parseFlag(query.Get("deepClean"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFlag)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getQuote.Request{
		PropertyID: propertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Addons:     domain.Addons{ExtraBedding: extraBedding, DeepClean: deepClean},
	})
	if err != nil {
		switch {
		case errors.Is(err, getQuote.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPropertyID)
		case errors.Is(err, getQuote.ErrPropertyNotFound):
			handlers.RespondNotFound(w, msgPropertyNotFound)
		default:
			h.logger.Error("GET /properties/{id}/quote - Catalog failure: property_id=%d, error=%v", propertyID, err)
			if handlers.RespondRemoteError(w, err) {
				return
			}
			handlers.RespondError(w, http.StatusBadGateway, msgCatalogFailed)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseFlag(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
