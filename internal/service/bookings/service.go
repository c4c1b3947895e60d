package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/internal/service/classifier"
	"github.com/m04kA/SMC-ReservationService/internal/service/dashboard"
)

// Service собирает представления бронирований пользователя.
// Каждый вызов заново загружает данные и заново классифицирует их, локальные копии не правятся.
type Service struct {
	bookingClient   BookingServiceClient
	complaintClient ComplaintServiceClient
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает сервис. metrics может быть nil.
func NewService(
	bookingClient BookingServiceClient,
	complaintClient ComplaintServiceClient,
	metrics MetricsRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingClient:   bookingClient,
		complaintClient: complaintClient,
		metrics:         metrics,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Reload загружает бронирования пользователя и строит классифицированное представление
func (s *Service) Reload(ctx context.Context, userID int64) (*models.BookingsView, error) {
	s.logger.Info("Reload: fetching bookings for user=%d", userID)

	all, err := s.bookingClient.GetUserBookings(ctx, userID)
	if err != nil {
		s.logger.Error("Reload: failed to fetch bookings for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings: %w", ErrRemote, err)
	}

	now := s.timeProvider.Now()
	buckets := s.classify(all, now)

	view := &models.BookingsView{
		Upcoming: models.FromDomainBookingList(buckets.Upcoming, now),
		Current:  models.FromDomainBookingList(buckets.Current, now),
		Past:     models.FromDomainBookingList(buckets.Past, now),
		Recent:   models.FromDomainBookingList(classifier.Recent(all, domain.RecentBookingsLimit), now),
		Total:    buckets.Total(),
	}

	s.logger.Info("Reload: user=%d, upcoming=%d, current=%d, past=%d",
		userID, len(view.Upcoming), len(view.Current), len(view.Past))
	return view, nil
}

// Dashboard загружает бронирования и жалобы и считает статистику
func (s *Service) Dashboard(ctx context.Context, userID int64) (*models.DashboardView, error) {
	s.logger.Info("Dashboard: building dashboard for user=%d", userID)

	all, err := s.bookingClient.GetUserBookings(ctx, userID)
	if err != nil {
		s.logger.Error("Dashboard: failed to fetch bookings for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings: %w", ErrRemote, err)
	}

	complaints, err := s.complaintClient.GetUserComplaints(ctx, userID)
	if err != nil {
		s.logger.Error("Dashboard: failed to fetch complaints for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserComplaints: %w", ErrRemote, err)
	}

	now := s.timeProvider.Now()
	buckets := s.classify(all, now)
	complaintBuckets := classifier.ClassifyComplaints(complaints)
	stats := dashboard.Aggregate(all, buckets, complaintBuckets)

	return &models.DashboardView{
		Stats:      models.FromStats(stats),
		Active:     models.FromDomainBookingList(buckets.Active(), now),
		Recent:     models.FromDomainBookingList(classifier.Recent(all, domain.RecentBookingsLimit), now),
		Complaints: models.FromComplaintBuckets(complaintBuckets),
	}, nil
}

// Complaints загружает и классифицирует жалобы пользователя
func (s *Service) Complaints(ctx context.Context, userID int64) (*models.ComplaintsView, error) {
	complaints, err := s.complaintClient.GetUserComplaints(ctx, userID)
	if err != nil {
		s.logger.Error("Complaints: failed to fetch complaints for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserComplaints: %w", ErrRemote, err)
	}

	view := models.FromComplaintBuckets(classifier.ClassifyComplaints(complaints))
	return &view, nil
}

// GetByID получает бронирование пользователя с категорией и флагом доступных действий
func (s *Service) GetByID(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", bookingID, userID)

	booking, err := s.bookingClient.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: failed to fetch booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByID: %w", ErrRemote, err)
	}

	if !booking.BelongsTo(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, bookingID)
		return nil, ErrAccessDenied
	}

	resp := models.FromDomainBooking(booking, s.timeProvider.Now())
	return &resp, nil
}

func (s *Service) classify(all []*domain.Booking, now time.Time) classifier.BookingBuckets {
	buckets := classifier.ClassifyBookings(all, now)
	if s.metrics != nil {
		s.metrics.AddClassified(len(buckets.Upcoming), len(buckets.Current), len(buckets.Past))
	}
	return buckets
}
