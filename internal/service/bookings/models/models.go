package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/classifier"
	"github.com/m04kA/SMC-ReservationService/internal/service/dashboard"
)

// BookingResponse бронирование с результатом классификации
type BookingResponse struct {
	ID           int64  `json:"id"`
	PropertyID   int64  `json:"propertyId"`
	UserID       int64  `json:"userId"`
	CheckIn      string `json:"checkin"`  // "2025-06-05"
	CheckOut     string `json:"checkout"` // "2025-06-08"
	Paid         bool   `json:"paid"`
	Status       string `json:"status"`
	ExtraBedding bool   `json:"extraBedding"`
	DeepClean    bool   `json:"deepClean"`
	TotalAmount  int64  `json:"totalAmount"`
	Rating       *int   `json:"rating,omitempty"`
	Bucket       string `json:"bucket"`
	Actionable   bool   `json:"actionable"`
}

// ComplaintResponse жалоба пользователя
type ComplaintResponse struct {
	ID          int64     `json:"id"`
	BookingID   *int64    `json:"bookingId,omitempty"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookingsView классифицированный список бронирований пользователя
type BookingsView struct {
	Upcoming []BookingResponse `json:"upcoming"`
	Current  []BookingResponse `json:"current"`
	Past     []BookingResponse `json:"past"`
	Recent   []BookingResponse `json:"recent"`
	Total    int               `json:"total"`
}

// ComplaintsView жалобы, разделенные на активные и закрытые
type ComplaintsView struct {
	Active   []ComplaintResponse `json:"active"`
	Resolved []ComplaintResponse `json:"resolved"`
}

// StatsResponse счетчики дашборда
type StatsResponse struct {
	Total              int `json:"total"`
	Upcoming           int `json:"upcoming"`
	Current            int `json:"current"`
	Past               int `json:"past"`
	Completed          int `json:"completed"`
	Cancelled          int `json:"cancelled"`
	ActiveComplaints   int `json:"activeComplaints"`
	ResolvedComplaints int `json:"resolvedComplaints"`
}

// DashboardView полный дашборд пользователя
type DashboardView struct {
	Stats      StatsResponse     `json:"stats"`
	Active     []BookingResponse `json:"active"`
	Recent     []BookingResponse `json:"recent"`
	Complaints ComplaintsView    `json:"complaints"`
}

// FromDomainBooking конвертирует бронирование с учетом now для категории и флага действий
func FromDomainBooking(b *domain.Booking, now time.Time) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		PropertyID:   b.PropertyID,
		UserID:       b.UserID,
		CheckIn:      domain.FormatDate(b.CheckIn),
		CheckOut:     domain.FormatDate(b.CheckOut),
		Paid:         b.Paid,
		Status:       string(b.Status),
		ExtraBedding: b.Addons.ExtraBedding,
		DeepClean:    b.Addons.DeepClean,
		TotalAmount:  b.TotalAmount,
		Rating:       b.Rating,
		Bucket:       string(classifier.BucketOf(b, now)),
		Actionable:   classifier.IsActionable(b, now),
	}
}

// FromDomainBookingList конвертирует список, пустой список остается пустым массивом в JSON
func FromDomainBookingList(list []*domain.Booking, now time.Time) []BookingResponse {
	out := make([]BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, FromDomainBooking(b, now))
	}
	return out
}

func FromDomainComplaint(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          c.ID,
		BookingID:   c.BookingID,
		Description: c.Description,
		Type:        c.Type,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
	}
}

func FromComplaintBuckets(b classifier.ComplaintBuckets) ComplaintsView {
	view := ComplaintsView{
		Active:   make([]ComplaintResponse, 0, len(b.Active)),
		Resolved: make([]ComplaintResponse, 0, len(b.Resolved)),
	}
	for _, c := range b.Active {
		view.Active = append(view.Active, FromDomainComplaint(c))
	}
	for _, c := range b.Resolved {
		view.Resolved = append(view.Resolved, FromDomainComplaint(c))
	}
	return view
}

func FromStats(s dashboard.Stats) StatsResponse {
	return StatsResponse{
		Total:              s.Total,
		Upcoming:           s.Upcoming,
		Current:            s.Current,
		Past:               s.Past,
		Completed:          s.Completed,
		Cancelled:          s.Cancelled,
		ActiveComplaints:   s.ActiveComplaints,
		ResolvedComplaints: s.ResolvedComplaints,
	}
}
