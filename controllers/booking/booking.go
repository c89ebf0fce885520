package booking

import (
	"fmt"

	"travel-agency/controllers/base"
	"travel-agency/logger"
	"travel-agency/middleware"
	"travel-agency/resource"
	bookingService "travel-agency/services/booking"
	bookingTypes "travel-agency/types/booking"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	publicListLimit = 100
	adminListLimit  = 200
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	base.Controller
	bookings *bookingService.Service
}

// NewBookingController creates a new booking controller
func NewBookingController(bookings *bookingService.Service, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{
		Controller: base.Controller{Logger: asyncLogger},
		bookings:   bookings,
	}
}

// Store creates a booking from the public site and schedules its notification
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.BookingCreateRequest
	if err := bc.Bind(c, &req); err != nil {
		return bc.Fail(c, err)
	}

	booking, err := bc.bookings.Create(c.UserContext(), req, c.Get(fiber.HeaderAcceptLanguage))
	if err != nil {
		return bc.Fail(c, err)
	}
	return bc.Created(c, "Booking created successfully", booking)
}

func (bc *BookingController) Index(c *fiber.Ctx) error {
	page := utils.ParsePage(c, publicListLimit, publicListLimit)
	bookings, err := bc.bookings.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return bc.Fail(c, err)
	}
	return bc.OK(c, "Bookings retrieved successfully", bookings)
}

func (bc *BookingController) AdminIndex(c *fiber.Ctx) error {
	page := utils.ParsePage(c, adminListLimit, adminListLimit)
	bookings, err := bc.bookings.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return bc.Fail(c, err)
	}
	return bc.OK(c, "Bookings retrieved successfully", bookings)
}

func (bc *BookingController) Show(c *fiber.Ctx) error {
	id, err := bc.ID(c, "Booking")
	if err != nil {
		return bc.Fail(c, err)
	}
	booking, err := bc.bookings.Get(c.UserContext(), id)
	if err != nil {
		return bc.Fail(c, err)
	}
	return bc.OK(c, "Booking retrieved successfully", booking)
}

// UpdateStatus changes the lifecycle status of a booking on behalf of the signed-in admin
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	id, err := bc.ID(c, "Booking")
	if err != nil {
		return bc.Fail(c, err)
	}
	var req bookingTypes.BookingStatusUpdateRequest
	if err := bc.Bind(c, &req); err != nil {
		return bc.Fail(c, err)
	}

	admin := middleware.AdminUsername(c)
	booking, err := bc.bookings.UpdateStatus(c.UserContext(), id, req.Status, admin)
	if err != nil {
		return bc.Fail(c, err)
	}
	logger.Info(fmt.Sprintf("Booking #%d status set to %s by %s", booking.ID, booking.Status, admin))
	return bc.OK(c, "Booking status updated successfully", resource.BookingStatusResponse{
		ID:     booking.ID,
		Status: string(booking.Status),
	})
}

func (bc *BookingController) Events(c *fiber.Ctx) error {
	id, err := bc.ID(c, "Booking")
	if err != nil {
		return bc.Fail(c, err)
	}
	events, err := bc.bookings.Events(c.UserContext(), id)
	if err != nil {
		return bc.Fail(c, err)
	}
	return bc.OK(c, "Booking history retrieved successfully", events)
}

func (bc *BookingController) Destroy(c *fiber.Ctx) error {
	id, err := bc.ID(c, "Booking")
	if err != nil {
		return bc.Fail(c, err)
	}
	if err := bc.bookings.Delete(c.UserContext(), id); err != nil {
		return bc.Fail(c, err)
	}
	return bc.NoContent(c)
}
