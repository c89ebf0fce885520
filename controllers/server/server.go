package server

import (
	"travel-agency/config"
	"travel-agency/resource"
	"travel-agency/types"

	"github.com/gofiber/fiber/v2"
)

type ServerController struct {
	app config.AppConfig
}

func NewServerController(app config.AppConfig) *ServerController {
	return &ServerController{app: app}
}

// Health is used by load balancers and is not written to the request log.
func (sc *ServerController) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "OK",
		Status:  fiber.StatusOK,
		Data: resource.HealthResponse{
			Status:  "healthy",
			App:     sc.app.Name,
			Version: sc.app.Version,
		},
	})
}
