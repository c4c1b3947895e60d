package modify_booking

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	modifyBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/modify_booking"
)

// ModifyBookingRequest HTTP request model, полная замена дат и опций
type ModifyBookingRequest struct {
	CheckIn      string `json:"checkin" validate:"required,datetime=2006-01-02"`
	CheckOut     string `json:"checkout" validate:"required,datetime=2006-01-02"`
	ExtraBedding bool   `json:"extraBedding"`
	DeepClean    bool   `json:"deepClean"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ModifyBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*modifyBooking.Request, error) {
	checkIn, err := domain.ParseDate(r.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := domain.ParseDate(r.CheckOut)
	if err != nil {
		return nil, err
	}

	return &modifyBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Addons:    domain.Addons{ExtraBedding: r.ExtraBedding, DeepClean: r.DeepClean},
	}, nil
}
