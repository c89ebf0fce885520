package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-agency/apperror"
	"travel-agency/config"
	"travel-agency/constants"
	"travel-agency/logger"
	"travel-agency/metrics"
	bookingModel "travel-agency/models/booking"
	tourModel "travel-agency/models/tour"
	"travel-agency/queue"
	"travel-agency/services/booking_event"
	bookingTypes "travel-agency/types/booking"

	"gorm.io/gorm"
)

const enqueueTimeout = 5 * time.Second

// Service owns the booking lifecycle: creation with notification scheduling and admin status changes.
type Service struct {
	db        *gorm.DB
	jobs      queue.Enqueuer
	languages config.LanguageConfig
}

func NewService(db *gorm.DB, jobs queue.Enqueuer, languages config.LanguageConfig) *Service {
	return &Service{db: db, jobs: jobs, languages: languages}
}

// Create stores a pending booking for an active tour and schedules its
// notification after the row is committed. A scheduling failure is logged
// and does not fail the booking.
func (s *Service) Create(ctx context.Context, req bookingTypes.BookingCreateRequest, acceptLanguage string) (*bookingModel.Booking, error) {
	language := ResolveLanguage(req.Language, acceptLanguage, s.languages)
	newBooking := req.ToModel(language)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tour tourModel.TourPackage
		if err := tx.First(&tour, req.TourID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Tour not found")
			}
			return apperror.Internal("Failed to load tour", err)
		}
		if !tour.IsActive {
			return apperror.InvalidState("Tour is not available for booking")
		}
		if err := tx.Create(&newBooking).Error; err != nil {
			return apperror.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCreated.WithLabelValues(newBooking.Language).Inc()
	logger.Success(fmt.Sprintf("Booking #%d created for tour #%d (lang=%s)", newBooking.ID, newBooking.TourID, newBooking.Language))

	s.scheduleNotification(ctx, newBooking.ID)
	return &newBooking, nil
}

func (s *Service) scheduleNotification(ctx context.Context, bookingID uint) {
	enqueueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
	defer cancel()

	job := queue.NewJob(constants.JobSendBookingNotification, bookingID)
	if err := s.jobs.Enqueue(enqueueCtx, job); err != nil {
		logger.Error(fmt.Sprintf("Failed to schedule notification for booking #%d", bookingID), err)
		return
	}
	logger.Info(fmt.Sprintf("Notification job %s scheduled for booking #%d", job.ID, bookingID))
}

// List returns bookings newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]bookingModel.Booking, error) {
	var bookings []bookingModel.Booking
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, apperror.Internal("Failed to list bookings", err)
	}
	return bookings, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*bookingModel.Booking, error) {
	return s.load(s.db.WithContext(ctx), id)
}

func (s *Service) load(db *gorm.DB, id uint) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Booking not found")
		}
		return nil, apperror.Internal("Failed to load booking", err)
	}
	return &b, nil
}

// UpdateStatus moves a booking along its lifecycle and records who did it.
// Setting the current status again is a no-op.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status string, changedBy string) (*bookingModel.Booking, error) {
	next := bookingModel.BookingStatus(status)
	if !next.IsValid() {
		return nil, apperror.InvalidField("status", "must be one of: pending confirmed cancelled completed")
	}

	var updated *bookingModel.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.load(tx, id)
		if err != nil {
			return err
		}
		if b.Status == next {
			updated = b
			return nil
		}
		if !b.Status.CanTransitionTo(next) {
			return apperror.InvalidState("Booking status cannot change from %s to %s", b.Status, next)
		}

		from := b.Status
		if err := tx.Model(b).Update("status", next).Error; err != nil {
			return apperror.Internal("Failed to update booking status", err)
		}
		b.Status = next
		if err := booking_event.RecordStatusChange(tx, b.ID, from, next, changedBy); err != nil {
			return apperror.Internal("Failed to record booking status change", err)
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a booking and its status history.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.load(tx, id); err != nil {
			return err
		}
		if err := booking_event.DeleteForBookings(tx, []uint{id}); err != nil {
			return apperror.Internal("Failed to delete booking history", err)
		}
		if err := tx.Delete(&bookingModel.Booking{}, id).Error; err != nil {
			return apperror.Internal("Failed to delete booking", err)
		}
		return nil
	})
}

// Events returns the status history of a booking.
func (s *Service) Events(ctx context.Context, id uint) ([]bookingModel.BookingStatusEvent, error) {
	db := s.db.WithContext(ctx)
	if _, err := s.load(db, id); err != nil {
		return nil, err
	}
	events, err := booking_event.ListForBooking(db, id)
	if err != nil {
		return nil, apperror.Internal("Failed to load booking history", err)
	}
	return events, nil
}
