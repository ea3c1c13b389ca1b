package routes

import (
	"time"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/config"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/handlers"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
	claimHandler *handlers.ClaimHandler,
	matchHandler *handlers.MatchHandler,
	adminHandler *handlers.AdminHandler,
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

	// Auth — public, with a stricter per-IP limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/otp/request", authHandler.RequestOtp)
	auth.Post("/otp/verify", authHandler.VerifyOtp)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Reports — search and detail are public, the rest requires auth
	api.Get("/reports/search", reportHandler.Search)
	api.Get("/reports/mine", middleware.JWTProtected(cfg), reportHandler.GetMine)
	api.Get("/reports/:id", reportHandler.GetByID)
	api.Post("/reports/lost", middleware.JWTProtected(cfg), reportHandler.CreateLost)
	api.Post("/reports/found", middleware.JWTProtected(cfg), reportHandler.CreateFound)
	api.Post("/reports/:id/close", middleware.JWTProtected(cfg), reportHandler.Close)
	api.Delete("/reports/:id", middleware.JWTProtected(cfg), reportHandler.Remove)

	// Claims — stricter limit on top of the persisted attempt cap
	claims := api.Group("/claims", middleware.JWTProtected(cfg))
	claims.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	claims.Post("/", claimHandler.Create)

	// Matches and their message threads
	matches := api.Group("/matches", middleware.JWTProtected(cfg))
	matches.Get("/mine", matchHandler.GetMine)
	matches.Get("/safe-locations", matchHandler.ListSafeLocations)
	matches.Get("/:id", matchHandler.GetByID)
	matches.Post("/:id/safe-location", matchHandler.SetSafeLocation)
	matches.Post("/:id/close", matchHandler.Close)
	matches.Get("/:id/messages", matchHandler.ListMessages)
	matches.Post("/:id/messages", matchHandler.SendMessage)

	// Moderation — flagging is for any authenticated user, review is not
	api.Post("/admin/reports/:id/flag", middleware.JWTProtected(cfg), adminHandler.FlagReport)

	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/flags", adminHandler.ListFlags)
	admin.Post("/reports/:id/remove", adminHandler.RemoveReport)
}
