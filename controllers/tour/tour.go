package tour

import (
	"errors"
	"fmt"

	"travel-agency/apperror"
	"travel-agency/controllers/base"
	"travel-agency/logger"
	bookingModel "travel-agency/models/booking"
	galleryModel "travel-agency/models/gallery"
	tourModel "travel-agency/models/tour"
	"travel-agency/services/booking_event"
	tourTypes "travel-agency/types/tour"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TourController handles tour package HTTP requests
type TourController struct {
	base.Controller
	DB *gorm.DB
}

func NewTourController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *TourController {
	return &TourController{
		Controller: base.Controller{Logger: asyncLogger},
		DB:         db,
	}
}

func findTour(db *gorm.DB, id uint) (*tourModel.TourPackage, error) {
	var tour tourModel.TourPackage
	if err := db.First(&tour, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Tour not found")
		}
		return nil, apperror.Internal("Failed to load tour", err)
	}
	return &tour, nil
}

// Index lists tours for the public site, newest first
func (tc *TourController) Index(c *fiber.Ctx) error {
	page := utils.ParsePage(c, 50, 100)
	query := tc.DB.WithContext(c.UserContext())
	if utils.QueryBool(c, "active_only", true) {
		query = query.Where("is_active = ?", true)
	}

	var tours []tourModel.TourPackage
	if err := query.Order("created_at DESC, id DESC").Limit(page.Limit).Offset(page.Offset).Find(&tours).Error; err != nil {
		return tc.Fail(c, apperror.Internal("Failed to list tours", err))
	}
	return tc.OK(c, "Tours retrieved successfully", tours)
}

func (tc *TourController) Show(c *fiber.Ctx) error {
	id, err := tc.ID(c, "Tour")
	if err != nil {
		return tc.Fail(c, err)
	}
	tour, err := findTour(tc.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return tc.Fail(c, err)
	}
	return tc.OK(c, "Tour retrieved successfully", tour)
}

// AdminIndex lists every tour, including inactive ones
func (tc *TourController) AdminIndex(c *fiber.Ctx) error {
	page := utils.ParsePage(c, 100, 200)
	var tours []tourModel.TourPackage
	if err := tc.DB.WithContext(c.UserContext()).Order("id DESC").Limit(page.Limit).Offset(page.Offset).Find(&tours).Error; err != nil {
		return tc.Fail(c, apperror.Internal("Failed to list tours", err))
	}
	return tc.OK(c, "Tours retrieved successfully", tours)
}

func (tc *TourController) Store(c *fiber.Ctx) error {
	var req tourTypes.TourCreateRequest
	if err := tc.Bind(c, &req); err != nil {
		return tc.Fail(c, err)
	}

	tour := req.ToModel()
	if err := tc.DB.WithContext(c.UserContext()).Create(&tour).Error; err != nil {
		return tc.Fail(c, apperror.Internal("Failed to create tour", err))
	}
	logger.Success(fmt.Sprintf("Tour #%d created: %s", tour.ID, tour.TitleEn))
	return tc.Created(c, "Tour created successfully", tour)
}

func (tc *TourController) Update(c *fiber.Ctx) error {
	id, err := tc.ID(c, "Tour")
	if err != nil {
		return tc.Fail(c, err)
	}
	var req tourTypes.TourUpdateRequest
	if err := tc.Bind(c, &req); err != nil {
		return tc.Fail(c, err)
	}

	db := tc.DB.WithContext(c.UserContext())
	tour, err := findTour(db, id)
	if err != nil {
		return tc.Fail(c, err)
	}
	req.Apply(tour)
	if err := db.Save(tour).Error; err != nil {
		return tc.Fail(c, apperror.Internal("Failed to update tour", err))
	}
	return tc.OK(c, "Tour updated successfully", tour)
}

// Destroy removes a tour with its bookings and their history. Gallery items
// stay and are detached from the tour.
func (tc *TourController) Destroy(c *fiber.Ctx) error {
	id, err := tc.ID(c, "Tour")
	if err != nil {
		return tc.Fail(c, err)
	}

	var removedBookings int
	err = tc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if _, err := findTour(tx, id); err != nil {
			return err
		}

		var bookingIDs []uint
		if err := tx.Model(&bookingModel.Booking{}).Where("tour_id = ?", id).Pluck("id", &bookingIDs).Error; err != nil {
			return apperror.Internal("Failed to load tour bookings", err)
		}
		if err := booking_event.DeleteForBookings(tx, bookingIDs); err != nil {
			return apperror.Internal("Failed to delete booking history", err)
		}
		if err := tx.Where("tour_id = ?", id).Delete(&bookingModel.Booking{}).Error; err != nil {
			return apperror.Internal("Failed to delete tour bookings", err)
		}
		if err := tx.Model(&galleryModel.GalleryItem{}).Where("tour_id = ?", id).Update("tour_id", nil).Error; err != nil {
			return apperror.Internal("Failed to detach gallery items", err)
		}
		if err := tx.Delete(&tourModel.TourPackage{}, id).Error; err != nil {
			return apperror.Internal("Failed to delete tour", err)
		}
		removedBookings = len(bookingIDs)
		return nil
	})
	if err != nil {
		return tc.Fail(c, err)
	}

	logger.Warning(fmt.Sprintf("Tour #%d deleted together with %d bookings", id, removedBookings))
	return tc.NoContent(c)
}
