package hotel

import (
	"errors"
	"strings"

	"travel-agency/apperror"
	"travel-agency/controllers/base"
	"travel-agency/logger"
	hotelModel "travel-agency/models/hotel"
	hotelTypes "travel-agency/types/hotel"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HotelController struct {
	base.Controller
	DB *gorm.DB
}

func NewHotelController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *HotelController {
	return &HotelController{
		Controller: base.Controller{Logger: asyncLogger},
		DB:         db,
	}
}

func (hc *HotelController) find(c *fiber.Ctx) (*hotelModel.Hotel, error) {
	id, err := hc.ID(c, "Hotel")
	if err != nil {
		return nil, err
	}
	var hotel hotelModel.Hotel
	if err := hc.DB.WithContext(c.UserContext()).First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Hotel not found")
		}
		return nil, apperror.Internal("Failed to load hotel", err)
	}
	return &hotel, nil
}

// Index lists hotels, best rated first. city matches case-insensitively.
func (hc *HotelController) Index(c *fiber.Ctx) error {
	page := utils.ParsePage(c, 50, 100)
	query := hc.DB.WithContext(c.UserContext())
	if utils.QueryBool(c, "active_only", true) {
		query = query.Where("is_active = ?", true)
	}
	if minStars := c.QueryInt("min_stars", 0); minStars > 0 {
		query = query.Where("star_rating >= ?", minStars)
	}
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}

	var hotels []hotelModel.Hotel
	if err := query.Order("star_rating DESC, id ASC").Limit(page.Limit).Offset(page.Offset).Find(&hotels).Error; err != nil {
		return hc.Fail(c, apperror.Internal("Failed to list hotels", err))
	}
	return hc.OK(c, "Hotels retrieved successfully", hotels)
}

func (hc *HotelController) Show(c *fiber.Ctx) error {
	hotel, err := hc.find(c)
	if err != nil {
		return hc.Fail(c, err)
	}
	return hc.OK(c, "Hotel retrieved successfully", hotel)
}

func (hc *HotelController) AdminIndex(c *fiber.Ctx) error {
	page := utils.ParsePage(c, 100, 200)
	var hotels []hotelModel.Hotel
	if err := hc.DB.WithContext(c.UserContext()).Order("id DESC").Limit(page.Limit).Offset(page.Offset).Find(&hotels).Error; err != nil {
		return hc.Fail(c, apperror.Internal("Failed to list hotels", err))
	}
	return hc.OK(c, "Hotels retrieved successfully", hotels)
}

func (hc *HotelController) Store(c *fiber.Ctx) error {
	var req hotelTypes.HotelCreateRequest
	if err := hc.Bind(c, &req); err != nil {
		return hc.Fail(c, err)
	}
	hotel := req.ToModel()
	if err := hc.DB.WithContext(c.UserContext()).Create(&hotel).Error; err != nil {
		return hc.Fail(c, apperror.Internal("Failed to create hotel", err))
	}
	return hc.Created(c, "Hotel created successfully", hotel)
}

func (hc *HotelController) Update(c *fiber.Ctx) error {
	var req hotelTypes.HotelUpdateRequest
	if err := hc.Bind(c, &req); err != nil {
		return hc.Fail(c, err)
	}
	hotel, err := hc.find(c)
	if err != nil {
		return hc.Fail(c, err)
	}
	req.Apply(hotel)
	if err := hc.DB.WithContext(c.UserContext()).Save(hotel).Error; err != nil {
		return hc.Fail(c, apperror.Internal("Failed to update hotel", err))
	}
	return hc.OK(c, "Hotel updated successfully", hotel)
}

func (hc *HotelController) Destroy(c *fiber.Ctx) error {
	hotel, err := hc.find(c)
	if err != nil {
		return hc.Fail(c, err)
	}
	if err := hc.DB.WithContext(c.UserContext()).Delete(hotel).Error; err != nil {
		return hc.Fail(c, apperror.Internal("Failed to delete hotel", err))
	}
	return hc.NoContent(c)
}
