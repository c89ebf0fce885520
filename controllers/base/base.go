package base

import (
	"errors"

	"travel-agency/apperror"
	"travel-agency/logger"
	"travel-agency/types"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
)

// Validatable is a request payload that normalizes and checks itself.
type Validatable interface {
	Validate() error
}

var errInvalidBody = errors.New("invalid request body")

// Controller carries the request logger shared by every controller.
type Controller struct {
	Logger *logger.AsyncLogger
}

// Helper function to log API requests and responses
func (bc *Controller) logAPIRequest(c *fiber.Ctx) {
	if bc.Logger == nil {
		return
	}
	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

// SendResponseWithLog writes response with status and queues the request log entry.
func (bc *Controller) SendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	response.Status = status
	result := c.Status(status).JSON(response)
	bc.logAPIRequest(c)
	return result
}

func (bc *Controller) OK(c *fiber.Ctx, message string, data interface{}) error {
	return bc.SendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{Message: message, Data: data})
}

func (bc *Controller) Created(c *fiber.Ctx, message string, data interface{}) error {
	return bc.SendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{Message: message, Data: data})
}

func (bc *Controller) NoContent(c *fiber.Ctx) error {
	result := c.SendStatus(fiber.StatusNoContent)
	bc.logAPIRequest(c)
	return result
}

// Fail maps err onto its HTTP status. Unclassified errors are logged and
// reported with a generic message.
func (bc *Controller) Fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, errInvalidBody) {
		return bc.SendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{Message: "Invalid request body"})
	}
	status := apperror.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error(c.Method()+" "+c.OriginalURL()+" failed", err)
	}
	return bc.SendResponseWithLog(c, status, types.ApiResponse{
		Message: apperror.Message(err),
		Errors:  apperror.Details(err),
	})
}

// Bind parses the JSON body into req and validates it.
func (bc *Controller) Bind(c *fiber.Ctx, req Validatable) error {
	if err := c.BodyParser(req); err != nil {
		logger.Error("Failed to parse request body", err)
		return errInvalidBody
	}
	return req.Validate()
}

// ID reads the :id route parameter, failing with 404 for anything that is not a positive integer.
func (bc *Controller) ID(c *fiber.Ctx, what string) (uint, error) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return 0, apperror.NotFound("%s not found", what)
	}
	return id, nil
}
