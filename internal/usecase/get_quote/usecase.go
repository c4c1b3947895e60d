package get_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
	"github.com/m04kA/SMC-ReservationService/internal/service/daterules"
	"github.com/m04kA/SMC-ReservationService/internal/service/pricing"
)

// UseCase расчет стоимости проживания без создания черновика
type UseCase struct {
	catalog      CatalogClient
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(catalog CatalogClient, timeProvider TimeProvider, logger Logger) *UseCase {
	return &UseCase{
		catalog:      catalog,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute считает ночи и сумму. При нарушении правил дат сумма равна нулю.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.PropertyID <= 0 {
		return nil, fmt.Errorf("%w: property id must be positive", ErrInvalidInput)
	}

	property, err := uc.catalog.GetProperty(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			uc.logger.Warn("GetQuote: property id=%d not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("GetQuote: failed to get property id=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: %w", ErrRemote, err)
	}

	resp := &Response{
		PropertyID:   property.ID,
		NightlyRate:  property.NightlyRate,
		ExtraBedding: req.Addons.ExtraBedding,
		DeepClean:    req.Addons.DeepClean,
		Violations:   []string{},
	}
	if !req.CheckIn.IsZero() {
		resp.CheckIn = domain.FormatDate(req.CheckIn)
	}
	if !req.CheckOut.IsZero() {
		resp.CheckOut = domain.FormatDate(req.CheckOut)
	}

	result := daterules.Validate(req.CheckIn, req.CheckOut, uc.timeProvider.Now())
	if !result.Valid() {
		for _, v := range result.Violations {
			resp.Violations = append(resp.Violations, v.Error())
		}
		return resp, nil
	}

	quote := pricing.QuoteFor(property.NightlyRate, req.CheckIn, req.CheckOut, req.Addons)
	resp.Nights = quote.Nights
	resp.Total = quote.Total
	resp.Valid = true

	return resp, nil
}
