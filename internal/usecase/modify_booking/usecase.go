package modify_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	"github.com/m04kA/SMC-ReservationService/internal/infra/inflight"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/internal/service/classifier"
	"github.com/m04kA/SMC-ReservationService/internal/service/daterules"
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

// Execute заменяет даты и доп. опции бронирования.
// Эндпоинт изменения у сервиса бронирований предварительный: отправляется полная замена.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ModifyBooking: booking=%d, user=%d, dates=%s..%s",
		req.BookingID, req.UserID, domain.FormatDate(req.CheckIn), domain.FormatDate(req.CheckOut))

	if req.BookingID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: booking id and user id must be positive", ErrInvalidInput)
	}

	// 1. Диапазон дат проверяется локально, до сети
	now := uc.timeProvider.Now()
	if err := daterules.Validate(req.CheckIn, req.CheckOut, now).Err(); err != nil {
		uc.logger.Warn("ModifyBooking: booking=%d: %v", req.BookingID, err)
		return nil, err
	}

	// 2. Блокировка до любого удаленного вызова
	release, err := uc.guard.Acquire(ctx, inflight.BookingKey(req.BookingID))
	if err != nil {
		if errors.Is(err, inflight.ErrInFlight) {
			uc.logger.Warn("ModifyBooking: booking=%d already in flight", req.BookingID)
			return nil, ErrInFlight
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	defer release()

	// 3. Проверка владельца и статуса по свежим данным
	current, err := uc.bookingClient.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ModifyBooking: failed to fetch booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	if !current.BelongsTo(req.UserID) {
		uc.logger.Warn("ModifyBooking: user=%d tried to modify booking=%d of user=%d",
			req.UserID, req.BookingID, current.UserID)
		return nil, ErrAccessDenied
	}
	if !classifier.IsActionable(current, now) {
		return nil, fmt.Errorf("%w: status=%s, checkin=%s", ErrNotActionable, current.Status, domain.FormatDate(current.CheckIn))
	}

	// 4. Изменение
	updated, err := uc.bookingClient.Modify(ctx, bookingservice.ModifyBookingRequest{
		BookingID:    req.BookingID,
		CheckIn:      domain.FormatDate(req.CheckIn),
		CheckOut:     domain.FormatDate(req.CheckOut),
		ExtraBedding: req.Addons.ExtraBedding,
		DeepClean:    req.Addons.DeepClean,
	})
	if err != nil {
		uc.logger.Error("ModifyBooking: failed to modify booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %w", ErrRemote, err)
	}

	uc.logger.Info("ModifyBooking: booking=%d modified", req.BookingID)

	e := events.New(events.TypeBookingModified, inflight.BookingKey(req.BookingID), req.UserID, map[string]any{
		"bookingId":    req.BookingID,
		"checkin":      domain.FormatDate(req.CheckIn),
		"checkout":     domain.FormatDate(req.CheckOut),
		"extraBedding": req.Addons.ExtraBedding,
		"deepClean":    req.Addons.DeepClean,
	}, now)
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.logger.Warn("ModifyBooking: failed to publish %s: %v", e.Type, err)
	}

	// 5. Полная перезагрузка
	resp := &Response{Booking: models.FromDomainBooking(updated, now)}
	view, err := uc.reloader.Reload(ctx, req.UserID)
	if err != nil {
		uc.logger.Warn("ModifyBooking: reload after modify failed: %v", err)
		return resp, nil
	}
	resp.Bookings = view

	return resp, nil
}
