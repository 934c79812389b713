package routes

import (
	"github.com/gin-gonic/gin"

	"transientmap/internal/handlers"
	"transientmap/internal/middleware"
	"transientmap/internal/models"
	"transientmap/internal/ratelimit"
	"transientmap/internal/session"
)

// Config carries the stores the router wires together.
type Config struct {
	Users    *models.Directory
	Sessions *session.Store
	Limiter  *ratelimit.Limiter
}

// SetupRoutes builds the gin engine for the session service.
func SetupRoutes(cfg Config) *gin.Engine {
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	h := handlers.NewSessionHandler(cfg.Users, cfg.Sessions, cfg.Limiter)

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":          "ok",
			"active_sessions": cfg.Sessions.Active(),
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/register", h.Register)
		api.POST("/login",
			middleware.LoginThrottleMiddleware(cfg.Limiter, func(c *gin.Context) string {
				return c.ClientIP()
			}),
			h.Login,
		)
	}

	// Protected routes (live session required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.SessionAuthMiddleware(cfg.Sessions))
	{
		protectedRoutes.POST("/logout", h.Logout)
		protectedRoutes.GET("/me", h.Me)
		protectedRoutes.GET("/sessions", h.ListSessions)
		protectedRoutes.POST("/sessions/sweep", h.SweepSessions)
	}

	return ginRouter
}
