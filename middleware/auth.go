package middleware

import (
	"strings"

	"travel-agency/apperror"
	"travel-agency/constants"
	"travel-agency/types"

	"github.com/gofiber/fiber/v2"
)

// TokenVerifier checks an access token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAdmin accepts a bearer token, or the access cookie when no
// Authorization header is sent, and stores the admin username in the context.
func RequireAdmin(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		var token string

		if authHeader != "" {
			tokenParts := strings.SplitN(authHeader, " ", 2)
			if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") || tokenParts[1] == "" {
				return unauthorized(c, "Invalid authorization header format")
			}
			token = tokenParts[1]
		} else {
			token = c.Cookies(constants.AccessCookieName)
			if token == "" {
				return unauthorized(c, "Not authenticated")
			}
		}

		username, err := verifier.Verify(token)
		if err != nil {
			return unauthorized(c, apperror.Message(err))
		}

		c.Locals(constants.LocalsAdmin, username)
		return c.Next()
	}
}

// AdminUsername returns the username stored by RequireAdmin.
func AdminUsername(c *fiber.Ctx) string {
	username, _ := c.Locals(constants.LocalsAdmin).(string)
	return username
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}
