package submit_complaint

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/complaintservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

type UseCase struct {
	complaintClient ComplaintServiceClient
	bookingClient   BookingServiceClient
	logger          Logger
}

func NewUseCase(complaintClient ComplaintServiceClient, bookingClient BookingServiceClient, logger Logger) *UseCase {
	return &UseCase{
		complaintClient: complaintClient,
		bookingClient:   bookingClient,
		logger:          logger,
	}
}

// Execute отправляет жалобу пользователя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.ComplaintResponse, error) {
	uc.logger.Info("SubmitComplaint: user=%d, type=%s", req.UserID, req.Type)

	req.Type = strings.TrimSpace(req.Type)
	req.Description = strings.TrimSpace(req.Description)
	if err := validate(req); err != nil {
		return nil, err
	}

	if req.BookingID != nil {
		booking, err := uc.bookingClient.GetByID(ctx, *req.BookingID)
		if err != nil {
			if errors.Is(err, remote.ErrNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, fmt.Errorf("%w: %w", ErrRemote, err)
		}
		if !booking.BelongsTo(req.UserID) {
			uc.logger.Warn("SubmitComplaint: user=%d referenced booking=%d of user=%d", req.UserID, booking.ID, booking.UserID)
			return nil, ErrAccessDenied
		}
	}

	created, err := uc.complaintClient.Submit(ctx, complaintservice.SubmitComplaintRequest{
		UserID:      req.UserID,
		BookingID:   req.BookingID,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		uc.logger.Error("SubmitComplaint: failed to submit complaint for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %w", ErrRemote, err)
	}

	uc.logger.Info("SubmitComplaint: complaint id=%d created", created.ID)

	resp := models.FromDomainComplaint(created)
	return &resp, nil
}

func validate(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	if req.BookingID != nil && *req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}
	if req.Type == "" || utf8.RuneCountInString(req.Type) > domain.MaxComplaintTypeLen {
		return fmt.Errorf("%w: type must be 1..%d characters", ErrInvalidInput, domain.MaxComplaintTypeLen)
	}
	if req.Description == "" || utf8.RuneCountInString(req.Description) > domain.MaxComplaintLength {
		return fmt.Errorf("%w: description must be 1..%d characters", ErrInvalidInput, domain.MaxComplaintLength)
	}
	return nil
}
