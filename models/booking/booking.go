package booking

import (
	"time"
)

// Booking is a customer request for a tour. Language decides which operator is notified.
type Booking struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	TourID        uint          `gorm:"not null" json:"tour_id"`
	CustomerName  string        `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string        `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone *string       `gorm:"type:varchar(50)" json:"customer_phone"`
	Message       *string       `gorm:"type:text" json:"message"`
	Language      string        `gorm:"type:varchar(5);not null;default:en" json:"language"`
	Status        BookingStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}
