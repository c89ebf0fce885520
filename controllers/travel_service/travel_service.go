package travel_service

import (
	"errors"

	"travel-agency/apperror"
	"travel-agency/controllers/base"
	"travel-agency/logger"
	serviceModel "travel-agency/models/travel_service"
	serviceTypes "travel-agency/types/travel_service"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ServiceController struct {
	base.Controller
	DB *gorm.DB
}

func NewServiceController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ServiceController {
	return &ServiceController{
		Controller: base.Controller{Logger: asyncLogger},
		DB:         db,
	}
}

func (sc *ServiceController) find(c *fiber.Ctx) (*serviceModel.TravelService, error) {
	id, err := sc.ID(c, "Service")
	if err != nil {
		return nil, err
	}
	var service serviceModel.TravelService
	if err := sc.DB.WithContext(c.UserContext()).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Service not found")
		}
		return nil, apperror.Internal("Failed to load service", err)
	}
	return &service, nil
}

func (sc *ServiceController) Index(c *fiber.Ctx) error {
	query := sc.DB.WithContext(c.UserContext())
	if utils.QueryBool(c, "active_only", true) {
		query = query.Where("is_active = ?", true)
	}
	var services []serviceModel.TravelService
	if err := query.Order("id ASC").Find(&services).Error; err != nil {
		return sc.Fail(c, apperror.Internal("Failed to list services", err))
	}
	return sc.OK(c, "Services retrieved successfully", services)
}

func (sc *ServiceController) Show(c *fiber.Ctx) error {
	service, err := sc.find(c)
	if err != nil {
		return sc.Fail(c, err)
	}
	return sc.OK(c, "Service retrieved successfully", service)
}

func (sc *ServiceController) Store(c *fiber.Ctx) error {
	var req serviceTypes.ServiceCreateRequest
	if err := sc.Bind(c, &req); err != nil {
		return sc.Fail(c, err)
	}
	service := req.ToModel()
	if err := sc.DB.WithContext(c.UserContext()).Create(&service).Error; err != nil {
		return sc.Fail(c, apperror.Internal("Failed to create service", err))
	}
	return sc.Created(c, "Service created successfully", service)
}

func (sc *ServiceController) Update(c *fiber.Ctx) error {
	var req serviceTypes.ServiceUpdateRequest
	if err := sc.Bind(c, &req); err != nil {
		return sc.Fail(c, err)
	}
	service, err := sc.find(c)
	if err != nil {
		return sc.Fail(c, err)
	}
	req.Apply(service)
	if err := sc.DB.WithContext(c.UserContext()).Save(service).Error; err != nil {
		return sc.Fail(c, apperror.Internal("Failed to update service", err))
	}
	return sc.OK(c, "Service updated successfully", service)
}

func (sc *ServiceController) Destroy(c *fiber.Ctx) error {
	service, err := sc.find(c)
	if err != nil {
		return sc.Fail(c, err)
	}
	if err := sc.DB.WithContext(c.UserContext()).Delete(service).Error; err != nil {
		return sc.Fail(c, apperror.Internal("Failed to delete service", err))
	}
	return sc.NoContent(c)
}
