package admin

import (
	"context"
	"time"

	"travel-agency/apperror"
	"travel-agency/controllers/base"
	"travel-agency/logger"
	blogModel "travel-agency/models/blog"
	bookingModel "travel-agency/models/booking"
	galleryModel "travel-agency/models/gallery"
	hotelModel "travel-agency/models/hotel"
	operatorModel "travel-agency/models/operator_config"
	tourModel "travel-agency/models/tour"
	serviceModel "travel-agency/models/travel_service"
	"travel-agency/queue"
	"travel-agency/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// JobHistory exposes the terminal results kept by the notification queue.
type JobHistory interface {
	Results(ctx context.Context, limit int) ([]queue.Result, error)
}

type AdminController struct {
	base.Controller
	DB      *gorm.DB
	History JobHistory
	// Clock returns the current time; stats windows are computed from it.
	Clock   func() time.Time
}

func NewAdminController(db *gorm.DB, jobs JobHistory, asyncLogger *logger.AsyncLogger) *AdminController {
	return &AdminController{
		Controller: base.Controller{Logger: asyncLogger},
		DB:         db,
		History:    jobs,
		Clock:      time.Now,
	}
}

type counter struct {
	target *int64
	model  interface{}
	where  []interface{}
}

// Stats returns the dashboard counters. Weeks start on Monday.
func (ac *AdminController) Stats(c *fiber.Ctx) error {
	cal := (&now.Config{WeekStartDay: time.Monday}).With(ac.Clock())

	var stats resource.DashboardStats
	counters := []counter{
		{&stats.Tours, &tourModel.TourPackage{}, nil},
		{&stats.ActiveTours, &tourModel.TourPackage{}, []interface{}{"is_active = ?", true}},
		{&stats.Hotels, &hotelModel.Hotel{}, nil},
		{&stats.Services, &serviceModel.TravelService{}, nil},
		{&stats.BlogArticles, &blogModel.BlogArticle{}, nil},
		{&stats.GalleryItems, &galleryModel.GalleryItem{}, nil},
		{&stats.Bookings, &bookingModel.Booking{}, nil},
		{&stats.BookingsPending, &bookingModel.Booking{}, []interface{}{"status = ?", bookingModel.BookingStatusPending}},
		{&stats.BookingsThisWeek, &bookingModel.Booking{}, []interface{}{"created_at >= ?", cal.BeginningOfWeek()}},
		{&stats.BookingsThisMonth, &bookingModel.Booking{}, []interface{}{"created_at >= ?", cal.BeginningOfMonth()}},
		{&stats.OperatorConfigs, &operatorModel.OperatorConfig{}, nil},
	}

	db := ac.DB.WithContext(c.UserContext())
	for _, ct := range counters {
		query := db.Model(ct.model)
		if len(ct.where) > 0 {
			query = query.Where(ct.where[0], ct.where[1:]...)
		}
		if err := query.Count(ct.target).Error; err != nil {
			return ac.Fail(c, apperror.Internal("Failed to compute dashboard stats", err))
		}
	}
	return ac.OK(c, "Dashboard stats retrieved successfully", stats)
}

// Jobs lists the most recent finished notification jobs, newest first
func (ac *AdminController) Jobs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 {
		limit = 1
	}
	if limit > 500 {
		limit = 500
	}
	results, err := ac.History.Results(c.UserContext(), limit)
	if err != nil {
		return ac.Fail(c, apperror.Internal("Failed to load job results", err))
	}
	return ac.OK(c, "Job results retrieved successfully", results)
}
