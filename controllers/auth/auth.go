package auth

import (
	"travel-agency/constants"
	"travel-agency/controllers/base"
	"travel-agency/logger"
	"travel-agency/middleware"
	"travel-agency/resource"
	authService "travel-agency/services/auth"
	"travel-agency/types"
	authTypes "travel-agency/types/auth"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	base.Controller
	auth       *authService.Service
	production bool
}

func NewAuthController(auth *authService.Service, asyncLogger *logger.AsyncLogger, production bool) *AuthController {
	return &AuthController{
		Controller: base.Controller{Logger: asyncLogger},
		auth:       auth,
		production: production,
	}
}

func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// Login exchanges the admin credentials for an access token
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := h.Bind(c, &req); err != nil {
		return h.Fail(c, err)
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		logger.Warning("Failed admin login attempt for username: " + req.Username)
		return h.Fail(c, err)
	}

	h.setSecureCookie(c, constants.AccessCookieName, token.AccessToken, int(h.auth.TTL().Seconds()))
	logger.Success("Admin logged in: " + token.Username)

	return h.SendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Login successful",
		Token:   token.AccessToken,
		Data: resource.LoginResponse{
			AccessToken: token.AccessToken,
			TokenType:   "bearer",
			Username:    token.Username,
			ExpiresAt:   token.ExpiresAt,
		},
	})
}

// Verify answers for a token already accepted by RequireAdmin
func (h *AuthController) Verify(c *fiber.Ctx) error {
	return h.OK(c, "Token is valid", resource.VerifyResponse{
		Valid:    true,
		Username: middleware.AdminUsername(c),
	})
}

func (h *AuthController) Logout(c *fiber.Ctx) error {
	h.setSecureCookie(c, constants.AccessCookieName, "", -1)
	logger.Success("Logout successful")
	return h.OK(c, "Logout successful", nil)
}
