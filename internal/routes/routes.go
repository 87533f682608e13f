package routes

import (
	"time"

	"github.com/alperendogan/devboard/internal/config"
	"github.com/alperendogan/devboard/internal/handlers"
	"github.com/alperendogan/devboard/internal/middleware"
	"github.com/alperendogan/devboard/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	oauthHandler *handlers.OAuthHandler,
	creditHandler *handlers.CreditHandler,
	likeHandler *handlers.LikeHandler,
	projectHandler *handlers.ProjectHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, stricter rate limit (10 req/min per IP) to slow
	// credential stuffing and code guessing.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify-email", authHandler.VerifyEmail)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Get("/google", oauthHandler.Start)
	auth.Get("/google/callback", oauthHandler.Callback)

	// Session-cookie protected
	api.Post("/auth/logout", middleware.SessionProtected(authService), authHandler.Logout)
	api.Post("/auth/onboarding", middleware.SessionProtected(authService), authHandler.CompleteOnboarding)

	// Projects
	api.Get("/projects", projectHandler.List)
	api.Post("/projects", middleware.JWTProtected(cfg), projectHandler.Create)

	// Likes — toggle needs auth, count is public
	api.Post("/projects/:id/like", middleware.JWTProtected(cfg), likeHandler.Toggle)
	api.Get("/projects/:id/likes", likeHandler.GetLikes)

	// Credits (JWT required)
	api.Get("/credits", middleware.JWTProtected(cfg), creditHandler.GetCredits)
	api.Post("/credits", middleware.JWTProtected(cfg), creditHandler.RecordCredit)
}
