package routes

import (
	"errors"
	"strings"
	"time"

	"travel-agency/logger"
	"travel-agency/types"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber application with its middleware and every route.
func NewApp(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:         deps.Config.App.Name,
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       int(deps.Config.Upload.MaxBytes) + 1024*1024,
		ErrorHandler:    ErrorHandler,
	})

	// Credentials cannot be combined with a wildcard origin.
	origins := strings.Join(splitOrigins(deps.Config.App.AllowedOrigins), ",")
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowCredentials: origins != "*",
	}))

	SetupRoutes(app, deps)
	return app
}

// ErrorHandler renders errors that escape the handlers, including unknown
// routes and recovered panics, as an ApiResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}
	if status >= fiber.StatusInternalServerError {
		logger.Error(c.Method()+" "+c.OriginalURL()+" failed", err)
	}

	return c.Status(status).JSON(types.ApiResponse{
		Message: message,
		Status:  status,
	})
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
