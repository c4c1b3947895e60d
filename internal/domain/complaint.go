package domain

import "time"

// ComplaintStatus represents the processing status of a complaint
type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "PENDING"
	ComplaintActive     ComplaintStatus = "ACTIVE"
	ComplaintInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintResolved   ComplaintStatus = "RESOLVED"
	ComplaintClosed     ComplaintStatus = "CLOSED"
)

// Complaint represents a user complaint, optionally linked to a booking
type Complaint struct {
	ID          int64
	UserID      int64
	BookingID   *int64
	Description string
	Type        string
	Status      ComplaintStatus
	CreatedAt   time.Time
}

// IsResolved returns true if the complaint no longer requires attention
func (c *Complaint) IsResolved() bool {
	return c.Status == ComplaintResolved || c.Status == ComplaintClosed
}
