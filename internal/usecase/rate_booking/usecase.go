package rate_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	"github.com/m04kA/SMC-ReservationService/internal/infra/inflight"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
	"github.com/m04kA/SMC-ReservationService/internal/service/classifier"
)

type UseCase struct {
	bookingClient BookingServiceClient
	publisher     EventPublisher
	timeProvider  TimeProvider
	logger        Logger
}

func NewUseCase(bookingClient BookingServiceClient, publisher EventPublisher, timeProvider TimeProvider, logger Logger) *UseCase {
	return &UseCase{
		bookingClient: bookingClient,
		publisher:     publisher,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Execute сохраняет оценку прошедшего проживания
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("RateBooking: booking=%d, user=%d, score=%d", req.BookingID, req.UserID, req.Score)

	req.Comment = strings.TrimSpace(req.Comment)
	if err := validate(req); err != nil {
		return err
	}

	booking, err := uc.bookingClient.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return ErrBookingNotFound
		}
		uc.logger.Error("RateBooking: failed to fetch booking=%d: %v", req.BookingID, err)
		return fmt.Errorf("%w: %w", ErrRemote, err)
	}
	if !booking.BelongsTo(req.UserID) {
		return ErrAccessDenied
	}
	if booking.Rating != nil {
		return ErrAlreadyRated
	}

	now := uc.timeProvider.Now()
	if booking.IsCancelled() || classifier.BucketOf(booking, now) != classifier.BucketPast {
		return fmt.Errorf("%w: status=%s, checkout=%s", ErrNotRateable, booking.Status, domain.FormatDate(booking.CheckOut))
	}

	if err := uc.bookingClient.Rate(ctx, req.BookingID, bookingservice.RateBookingRequest{
		Score:   req.Score,
		Comment: req.Comment,
	}); err != nil {
		uc.logger.Error("RateBooking: failed to rate booking=%d: %v", req.BookingID, err)
		return fmt.Errorf("%w: %w", ErrRemote, err)
	}

	e := events.New(events.TypeBookingRated, inflight.BookingKey(req.BookingID), req.UserID,
		map[string]any{"bookingId": req.BookingID, "propertyId": booking.PropertyID, "score": req.Score}, now)
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.logger.Warn("RateBooking: failed to publish %s: %v", e.Type, err)
	}

	uc.logger.Info("RateBooking: booking=%d rated %d", req.BookingID, req.Score)
	return nil
}

func validate(req *Request) error {
	if req.BookingID <= 0 || req.UserID <= 0 {
		return fmt.Errorf("%w: booking id and user id must be positive", ErrInvalidInput)
	}
	if req.Score < domain.MinRating || req.Score > domain.MaxRating {
		return fmt.Errorf("%w: score must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if utf8.RuneCountInString(req.Comment) > domain.MaxRatingCommentLen {
		return fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, domain.MaxRatingCommentLen)
	}
	return nil
}
