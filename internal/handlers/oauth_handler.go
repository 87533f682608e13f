package handlers

import (
	"errors"
	"log/slog"

	"github.com/alperendogan/devboard/internal/config"
	"github.com/alperendogan/devboard/internal/dto"
	"github.com/alperendogan/devboard/internal/services"
	"github.com/gofiber/fiber/v2"
)

const oauthProvider = "google"

type OAuthHandler struct {
	oauthService *services.OAuthService
	authService  *services.AuthService
	cfg          *config.Config
}

func NewOAuthHandler(oauthService *services.OAuthService, authService *services.AuthService, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{oauthService: oauthService, authService: authService, cfg: cfg}
}

// Start handles GET /api/auth/google. Redirects to the provider with a
// freshly issued anti-forgery state.
func (h *OAuthHandler) Start(c *fiber.Ctx) error {
	if h.cfg.GoogleClientID == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Google sign-in is not configured",
		})
	}

	redirectURL, err := h.oauthService.Start(oauthProvider)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}

// Callback handles GET /api/auth/google/callback. The state must match
// an unconsumed record before the code is exchanged.
func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing state or code",
		})
	}

	user, err := h.oauthService.Complete(oauthProvider, state, code)
	if err != nil {
		if errors.Is(err, services.ErrInvalidState) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("oauth callback failed", "provider", oauthProvider, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	resp, err := h.authService.IssueSession(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	setSessionCookie(c, h.cfg, resp.SessionToken)
	return c.Redirect(h.cfg.AppURL, fiber.StatusTemporaryRedirect)
}
