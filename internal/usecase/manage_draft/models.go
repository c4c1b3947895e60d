package manage_draft

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/drafts"
)

// StartRequest запрос на начало оформления
type StartRequest struct {
	UserID     int64
	PropertyID int64
}

// DatesRequest даты проживания
type DatesRequest struct {
	DraftID  string
	UserID   int64
	CheckIn  time.Time
	CheckOut time.Time
}

// AddonsRequest доп. опции
type AddonsRequest struct {
	DraftID string
	UserID  int64
	Addons  domain.Addons
}

// Response состояние черновика
type Response struct {
	ID           string  `json:"id"`
	PropertyID   int64   `json:"propertyId"`
	NightlyRate  int64   `json:"nightlyRate"`
	Step         string  `json:"step"`
	CheckIn      *string `json:"checkin,omitempty"`
	CheckOut     *string `json:"checkout,omitempty"`
	ExtraBedding bool    `json:"extraBedding"`
	DeepClean    bool    `json:"deepClean"`
	Nights       int     `json:"nights"`
	Total        int64   `json:"total"`
	LastError    string  `json:"lastError,omitempty"`
}

// FromSnapshot конвертирует снимок мастера в ответ
func FromSnapshot(s drafts.Snapshot) *Response {
	resp := &Response{
		ID:           s.Draft.ID,
		PropertyID:   s.Draft.PropertyID,
		NightlyRate:  s.Draft.NightlyRate,
		Step:         string(s.State),
		ExtraBedding: s.Draft.Addons.ExtraBedding,
		DeepClean:    s.Draft.Addons.DeepClean,
		Nights:       s.Draft.Nights,
		Total:        s.Draft.Total,
	}
	if !s.Draft.CheckIn.IsZero() {
		v := domain.FormatDate(s.Draft.CheckIn)
		resp.CheckIn = &v
	}
	if !s.Draft.CheckOut.IsZero() {
		v := domain.FormatDate(s.Draft.CheckOut)
		resp.CheckOut = &v
	}
	if s.LastError != nil {
		resp.LastError = s.LastError.Error()
	}
	return resp
}
