package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-agency/apperror"
	"travel-agency/config"
	"travel-agency/database"
	bookingModel "travel-agency/models/booking"
	tourModel "travel-agency/models/tour"
	"travel-agency/queue"
	bookingTypes "travel-agency/types/booking"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type failingEnqueuer struct {
	calls int
}

func (f *failingEnqueuer) Enqueue(context.Context, queue.Job) error {
	f.calls++
	return errors.New("redis: connection refused")
}

var testLanguages = config.LanguageConfig{Supported: []string{"ru", "en", "fr"}, Default: "en"}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTour(t *testing.T, db *gorm.DB, active bool) tourModel.TourPackage {
	t.Helper()
	tour := tourModel.TourPackage{
		TitleRu: "Альпы", TitleEn: "Alps Trek", TitleFr: "Alpes",
		DescriptionRu: "-", DescriptionEn: "-", DescriptionFr: "-",
		Price: decimal.NewFromInt(1000), DurationDays: 5, Destination: "Zermatt",
		IsActive: active,
	}
	require.NoError(t, db.Create(&tour).Error)
	return tour
}

func bookingRequest(tourID uint, language string) bookingTypes.BookingCreateRequest {
	return bookingTypes.BookingCreateRequest{
		TourID:        tourID,
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@x.com",
		Language:      language,
	}
}

func countBookings(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&bookingModel.Booking{}).Count(&n).Error)
	return n
}

func TestCreatePersistsPendingBookingAndEnqueuesOneJob(t *testing.T) {
	db := setupDB(t)
	q := queue.NewMemoryQueue(10, 10)
	svc := NewService(db, q, testLanguages)
	tour := createTour(t, db, true)

	b, err := svc.Create(context.Background(), bookingRequest(tour.ID, "fr"), "")
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, bookingModel.BookingStatusPending, b.Status)
	assert.Equal(t, "fr", b.Language)

	require.Equal(t, 1, q.Len())
	job, err := q.Dequeue(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "send_booking_notification", job.Type)
	assert.Equal(t, b.ID, job.BookingID)

	var stored bookingModel.Booking
	require.NoError(t, db.First(&stored, b.ID).Error)
	assert.Equal(t, "fr", stored.Language)
	assert.Equal(t, bookingModel.BookingStatusPending, stored.Status)
}

func TestCreateNormalizesUnsupportedLanguageToDefault(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, queue.NewMemoryQueue(10, 10), testLanguages)
	tour := createTour(t, db, true)

	for _, hint := range []string{"", "de", "zz-ZZ"} {
		b, err := svc.Create(context.Background(), bookingRequest(tour.ID, hint), "")
		require.NoError(t, err)
		assert.Equal(t, "en", b.Language, "hint %q", hint)
	}
}

func TestCreateUsesAcceptLanguageWhenNoHint(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, queue.NewMemoryQueue(10, 10), testLanguages)
	tour := createTour(t, db, true)

	b, err := svc.Create(context.Background(), bookingRequest(tour.ID, ""), "en-US,en;q=0.9,fr;q=0.8")
	require.NoError(t, err)
	assert.Equal(t, "en", b.Language)

	b, err = svc.Create(context.Background(), bookingRequest(tour.ID, ""), "ru-RU,ru;q=0.9")
	require.NoError(t, err)
	assert.Equal(t, "ru", b.Language)
}

func TestCreateUnknownTourIsNotFound(t *testing.T) {
	db := setupDB(t)
	q := queue.NewMemoryQueue(10, 10)
	svc := NewService(db, q, testLanguages)

	_, err := svc.Create(context.Background(), bookingRequest(999, "en"), "")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Zero(t, countBookings(t, db))
	assert.Zero(t, q.Len())
}

func TestCreateInactiveTourIsInvalidState(t *testing.T) {
	db := setupDB(t)
	q := queue.NewMemoryQueue(10, 10)
	svc := NewService(db, q, testLanguages)
	tour := createTour(t, db, false)

	_, err := svc.Create(context.Background(), bookingRequest(tour.ID, "en"), "")
	assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	assert.Zero(t, countBookings(t, db))
	assert.Zero(t, q.Len())
}

func TestCreateSurvivesEnqueueFailure(t *testing.T) {
	db := setupDB(t)
	jobs := &failingEnqueuer{}
	svc := NewService(db, jobs, testLanguages)
	tour := createTour(t, db, true)

	b, err := svc.Create(context.Background(), bookingRequest(tour.ID, "ru"), "")
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.Equal(t, 1, jobs.calls)
	assert.Equal(t, int64(1), countBookings(t, db))
}

func TestListNewestFirst(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, queue.NewMemoryQueue(10, 10), testLanguages)
	tour := createTour(t, db, true)

	first, err := svc.Create(context.Background(), bookingRequest(tour.ID, "en"), "")
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), bookingRequest(tour.ID, "en"), "")
	require.NoError(t, err)

	bookings, err := svc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, second.ID, bookings[0].ID)
	assert.Equal(t, first.ID, bookings[1].ID)

	bookings, err = svc.List(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestUpdateStatusFollowsLifecycleAndRecordsHistory(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, queue.NewMemoryQueue(10, 10), testLanguages)
	tour := createTour(t, db, true)
	b, err := svc.Create(context.Background(), bookingRequest(tour.ID, "en"), "")
	require.NoError(t, err)
	ctx := context.Background()

	updated, err := svc.UpdateStatus(ctx, b.ID, "confirmed", "admin")
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusConfirmed, updated.Status)

	updated, err = svc.UpdateStatus(ctx, b.ID, "completed", "admin")
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusCompleted, updated.Status)

	_, err = svc.UpdateStatus(ctx, b.ID, "pending", "admin")
	assert.True(t, apperror.Is(err, apperror.KindInvalidState))

	events, err := svc.Events(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, bookingModel.BookingStatusPending, events[0].FromStatus)
	assert.Equal(t, bookingModel.BookingStatusConfirmed, events[0].Status)
	assert.Equal(t, bookingModel.BookingStatusCompleted, events[1].Status)
	assert.Equal(t, "admin", events[1].CreatedBy)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, queue.NewMemoryQueue(10, 10), testLanguages)
	tour := createTour(t, db, true)
	b, err := svc.Create(context.Background(), bookingRequest(tour.ID, "en"), "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), b.ID, "shipped", "admin")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	stored, err := svc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusPending, stored.Status)
}

func TestUpdateStatusSameStatusIsNoop(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, queue.NewMemoryQueue(10, 10), testLanguages)
	tour := createTour(t, db, true)
	b, err := svc.Create(context.Background(), bookingRequest(tour.ID, "en"), "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), b.ID, "pending", "admin")
	require.NoError(t, err)

	events, err := svc.Events(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, queue.NewMemoryQueue(10, 10), testLanguages)

	_, err := svc.UpdateStatus(context.Background(), 42, "confirmed", "admin")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestDeleteRemovesBookingAndHistory(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, queue.NewMemoryQueue(10, 10), testLanguages)
	tour := createTour(t, db, true)
	b, err := svc.Create(context.Background(), bookingRequest(tour.ID, "en"), "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), b.ID, "cancelled", "admin")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), b.ID))
	assert.Zero(t, countBookings(t, db))

	var events int64
	require.NoError(t, db.Model(&bookingModel.BookingStatusEvent{}).Count(&events).Error)
	assert.Zero(t, events)

	err = svc.Delete(context.Background(), b.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
