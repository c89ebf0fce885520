package booking_event

import (
	bookingModel "travel-agency/models/booking"

	"gorm.io/gorm"
)

// RecordStatusChange writes one history row for a booking status change.
// Call it inside the transaction that updates the booking.
func RecordStatusChange(tx *gorm.DB, bookingID uint, from, to bookingModel.BookingStatus, changedBy string) error {
	ev := bookingModel.BookingStatusEvent{
		BookingID:  bookingID,
		FromStatus: from,
		Status:     to,
		CreatedBy:  changedBy,
	}
	return tx.Create(&ev).Error
}

// ListForBooking returns the status history of a booking, oldest first.
func ListForBooking(db *gorm.DB, bookingID uint) ([]bookingModel.BookingStatusEvent, error) {
	var events []bookingModel.BookingStatusEvent
	err := db.Where("booking_id = ?", bookingID).Order("created_at ASC, id ASC").Find(&events).Error
	return events, err
}

// DeleteForBookings removes the history of the given bookings.
func DeleteForBookings(tx *gorm.DB, bookingIDs []uint) error {
	if len(bookingIDs) == 0 {
		return nil
	}
	return tx.Where("booking_id IN ?", bookingIDs).Delete(&bookingModel.BookingStatusEvent{}).Error
}
