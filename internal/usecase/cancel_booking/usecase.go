package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	"github.com/m04kA/SMC-ReservationService/internal/infra/inflight"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
	"github.com/m04kA/SMC-ReservationService/internal/service/classifier"
)

type UseCase struct {
	bookingClient BookingServiceClient
	guard         InFlightGuard
	reloader      BookingsReloader
	publisher     EventPublisher
	timeProvider  TimeProvider
	logger        Logger
}

func NewUseCase(
	bookingClient BookingServiceClient,
	guard InFlightGuard,
	reloader BookingsReloader,
	publisher EventPublisher,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingClient: bookingClient,
		guard:         guard,
		reloader:      reloader,
		publisher:     publisher,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Execute отменяет бронирование пользователя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	if req.BookingID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: booking id and user id must be positive", ErrInvalidInput)
	}
	if !req.Confirmed {
		return nil, ErrConfirmationRequired
	}

	// 1. Блокировка до любого удаленного вызова
	release, err := uc.guard.Acquire(ctx, inflight.BookingKey(req.BookingID))
	if err != nil {
		if errors.Is(err, inflight.ErrInFlight) {
			uc.logger.Warn("CancelBooking: booking=%d already in flight", req.BookingID)
			return nil, ErrInFlight
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	defer release()

	// 2. Проверка владельца и статуса по свежим данным
	booking, err := uc.bookingClient.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to fetch booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	if !booking.BelongsTo(req.UserID) {
		uc.logger.Warn("CancelBooking: user=%d tried to cancel booking=%d of user=%d",
			req.UserID, req.BookingID, booking.UserID)
		return nil, ErrAccessDenied
	}

	now := uc.timeProvider.Now()
	if !classifier.IsActionable(booking, now) {
		return nil, fmt.Errorf("%w: status=%s, checkin=%s", ErrNotActionable, booking.Status, domain.FormatDate(booking.CheckIn))
	}

	// 3. Отмена
	if err := uc.bookingClient.Cancel(ctx, req.BookingID); err != nil {
		uc.logger.Error("CancelBooking: failed to cancel booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %w", ErrRemote, err)
	}

	uc.logger.Info("CancelBooking: booking=%d cancelled", req.BookingID)

	e := events.New(events.TypeBookingCancelled, inflight.BookingKey(req.BookingID), req.UserID,
		map[string]any{"bookingId": req.BookingID, "propertyId": booking.PropertyID}, now)
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.logger.Warn("CancelBooking: failed to publish %s: %v", e.Type, err)
	}

	// 4. Полная перезагрузка, локальный список не правится
	resp := &Response{BookingID: req.BookingID}
	view, err := uc.reloader.Reload(ctx, req.UserID)
	if err != nil {
		uc.logger.Warn("CancelBooking: reload after cancel failed: %v", err)
		return resp, nil
	}
	resp.Bookings = view

	return resp, nil
}
