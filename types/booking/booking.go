package booking

import (
	"strings"

	bookingModel "travel-agency/models/booking"
	"travel-agency/types"
)

// BookingCreateRequest is the public booking form. Language is a hint and is
// normalized against the supported set rather than rejected.
type BookingCreateRequest struct {
	TourID        uint    `json:"tour_id" validate:"required,gt=0"`
	CustomerName  string  `json:"customer_name" validate:"required,min=2,max=255"`
	CustomerEmail string  `json:"customer_email" validate:"required,email,max=255"`
	CustomerPhone *string `json:"customer_phone" validate:"omitempty,max=50"`
	Message       *string `json:"message" validate:"omitempty,max=5000"`
	Language      string  `json:"language" validate:"omitempty,max=35"`
}

func (b *BookingCreateRequest) Validate() error {
	b.CustomerName = strings.TrimSpace(b.CustomerName)
	b.CustomerEmail = strings.TrimSpace(b.CustomerEmail)
	b.CustomerPhone = trimmedOrNil(b.CustomerPhone)
	b.Message = trimmedOrNil(b.Message)
	return types.ValidateStruct(b)
}

// ToModel builds a pending booking in the given, already resolved, language.
func (b BookingCreateRequest) ToModel(language string) bookingModel.Booking {
	return bookingModel.Booking{
		TourID:        b.TourID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Message:       b.Message,
		Language:      language,
		Status:        bookingModel.BookingStatusPending,
	}
}

type BookingStatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func (b *BookingStatusUpdateRequest) Validate() error {
	b.Status = strings.ToLower(strings.TrimSpace(b.Status))
	return types.ValidateStruct(b)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
