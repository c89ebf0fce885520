package operator_config

import (
	"fmt"

	"travel-agency/controllers/base"
	"travel-agency/logger"
	operatorService "travel-agency/services/operator_config"
	operatorTypes "travel-agency/types/operator_config"

	"github.com/gofiber/fiber/v2"
)

// OperatorConfigController manages which operator receives bookings for each language
type OperatorConfigController struct {
	base.Controller
	operators *operatorService.Service
}

func NewOperatorConfigController(operators *operatorService.Service, asyncLogger *logger.AsyncLogger) *OperatorConfigController {
	return &OperatorConfigController{
		Controller: base.Controller{Logger: asyncLogger},
		operators:  operators,
	}
}

func (oc *OperatorConfigController) Index(c *fiber.Ctx) error {
	configs, err := oc.operators.List(c.UserContext())
	if err != nil {
		return oc.Fail(c, err)
	}
	return oc.OK(c, "Operator configs retrieved successfully", configs)
}

func (oc *OperatorConfigController) Show(c *fiber.Ctx) error {
	id, err := oc.ID(c, "Operator config")
	if err != nil {
		return oc.Fail(c, err)
	}
	cfg, err := oc.operators.Get(c.UserContext(), id)
	if err != nil {
		return oc.Fail(c, err)
	}
	return oc.OK(c, "Operator config retrieved successfully", cfg)
}

func (oc *OperatorConfigController) Store(c *fiber.Ctx) error {
	var req operatorTypes.OperatorConfigCreateRequest
	if err := oc.Bind(c, &req); err != nil {
		return oc.Fail(c, err)
	}
	cfg, err := oc.operators.Create(c.UserContext(), req)
	if err != nil {
		return oc.Fail(c, err)
	}
	logger.Success(fmt.Sprintf("Operator for '%s' set to %s", cfg.LanguageCode, cfg.OperatorEmail))
	return oc.Created(c, "Operator config created successfully", cfg)
}

func (oc *OperatorConfigController) Update(c *fiber.Ctx) error {
	id, err := oc.ID(c, "Operator config")
	if err != nil {
		return oc.Fail(c, err)
	}
	var req operatorTypes.OperatorConfigUpdateRequest
	if err := oc.Bind(c, &req); err != nil {
		return oc.Fail(c, err)
	}
	cfg, err := oc.operators.Update(c.UserContext(), id, req)
	if err != nil {
		return oc.Fail(c, err)
	}
	return oc.OK(c, "Operator config updated successfully", cfg)
}

func (oc *OperatorConfigController) Destroy(c *fiber.Ctx) error {
	id, err := oc.ID(c, "Operator config")
	if err != nil {
		return oc.Fail(c, err)
	}
	if err := oc.operators.Delete(c.UserContext(), id); err != nil {
		return oc.Fail(c, err)
	}
	return oc.NoContent(c)
}
