package booking

import (
	"time"
)

// BookingStatusEvent records one admin status change of a booking.
type BookingStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID uint `gorm:"not null;index" json:"booking_id"`

	FromStatus BookingStatus `gorm:"size:20;not null" json:"from_status"`
	Status     BookingStatus `gorm:"size:20;not null" json:"status"`
	CreatedBy  string        `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the BookingStatusEvent model
func (BookingStatusEvent) TableName() string {
	return "booking_status_events"
}
