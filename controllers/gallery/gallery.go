package gallery

import (
	"errors"

	"travel-agency/apperror"
	"travel-agency/controllers/base"
	"travel-agency/logger"
	galleryModel "travel-agency/models/gallery"
	tourModel "travel-agency/models/tour"
	galleryTypes "travel-agency/types/gallery"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GalleryController struct {
	base.Controller
	DB *gorm.DB
}

func NewGalleryController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *GalleryController {
	return &GalleryController{
		Controller: base.Controller{Logger: asyncLogger},
		DB:         db,
	}
}

func (gc *GalleryController) find(c *fiber.Ctx) (*galleryModel.GalleryItem, error) {
	id, err := gc.ID(c, "Gallery item")
	if err != nil {
		return nil, err
	}
	var item galleryModel.GalleryItem
	if err := gc.DB.WithContext(c.UserContext()).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Gallery item not found")
		}
		return nil, apperror.Internal("Failed to load gallery item", err)
	}
	return &item, nil
}

// ensureTour checks that an attached tour exists.
func (gc *GalleryController) ensureTour(c *fiber.Ctx, tourID *uint) error {
	if tourID == nil {
		return nil
	}
	var count int64
	if err := gc.DB.WithContext(c.UserContext()).Model(&tourModel.TourPackage{}).Where("id = ?", *tourID).Count(&count).Error; err != nil {
		return apperror.Internal("Failed to load tour", err)
	}
	if count == 0 {
		return apperror.NotFound("Tour not found")
	}
	return nil
}

// Index lists gallery items in display order
func (gc *GalleryController) Index(c *fiber.Ctx) error {
	page := utils.ParsePage(c, 50, 100)
	query := gc.DB.WithContext(c.UserContext())
	if raw := c.Query("media_type"); raw != "" {
		mediaType := galleryModel.MediaType(raw)
		if !mediaType.IsValid() {
			return gc.Fail(c, apperror.InvalidField("media_type", "must be one of: image video"))
		}
		query = query.Where("media_type = ?", mediaType)
	}
	if tourID, ok := utils.QueryID(c, "tour_id"); ok {
		query = query.Where("tour_id = ?", tourID)
	}

	var items []galleryModel.GalleryItem
	if err := query.Order("sort_order ASC, id ASC").Limit(page.Limit).Offset(page.Offset).Find(&items).Error; err != nil {
		return gc.Fail(c, apperror.Internal("Failed to list gallery items", err))
	}
	return gc.OK(c, "Gallery items retrieved successfully", items)
}

func (gc *GalleryController) Show(c *fiber.Ctx) error {
	item, err := gc.find(c)
	if err != nil {
		return gc.Fail(c, err)
	}
	return gc.OK(c, "Gallery item retrieved successfully", item)
}

func (gc *GalleryController) Store(c *fiber.Ctx) error {
	var req galleryTypes.GalleryCreateRequest
	if err := gc.Bind(c, &req); err != nil {
		return gc.Fail(c, err)
	}
	if err := gc.ensureTour(c, req.TourID); err != nil {
		return gc.Fail(c, err)
	}
	item := req.ToModel()
	if err := gc.DB.WithContext(c.UserContext()).Create(&item).Error; err != nil {
		return gc.Fail(c, apperror.Internal("Failed to create gallery item", err))
	}
	return gc.Created(c, "Gallery item created successfully", item)
}

func (gc *GalleryController) Update(c *fiber.Ctx) error {
	var req galleryTypes.GalleryUpdateRequest
	if err := gc.Bind(c, &req); err != nil {
		return gc.Fail(c, err)
	}
	item, err := gc.find(c)
	if err != nil {
		return gc.Fail(c, err)
	}
	req.Apply(item)
	if err := gc.ensureTour(c, item.TourID); err != nil {
		return gc.Fail(c, err)
	}
	if err := gc.DB.WithContext(c.UserContext()).Save(item).Error; err != nil {
		return gc.Fail(c, apperror.Internal("Failed to update gallery item", err))
	}
	return gc.OK(c, "Gallery item updated successfully", item)
}

func (gc *GalleryController) Destroy(c *fiber.Ctx) error {
	item, err := gc.find(c)
	if err != nil {
		return gc.Fail(c, err)
	}
	if err := gc.DB.WithContext(c.UserContext()).Delete(item).Error; err != nil {
		return gc.Fail(c, apperror.Internal("Failed to delete gallery item", err))
	}
	return gc.NoContent(c)
}
