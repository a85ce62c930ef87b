package routes

import (
	"association-site-api/internal/handlers"
	"association-site-api/internal/metrics"
	"association-site-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(h *handlers.Handler, m *metrics.Metrics) *gin.Engine {
	// Create a new GIN Router
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

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Association site API is running",
		})
	})
	if m != nil {
		ginRouter.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/login", h.Login)
		api.GET("/media", h.ListMedia)
		api.GET("/newsletters", h.ListPublishedNewsletters)
		api.POST("/newsletter/subscribe", h.Subscribe)
		api.POST("/newsletter/unsubscribe", h.Unsubscribe)
		api.POST("/contact", h.CreateContactMessage)
	}

	// Admin routes (authentication required)
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth())
	{
		admin.POST("/media", h.CreateMedia)
		admin.PUT("/media/:id", h.UpdateMedia)
		admin.DELETE("/media/:id", h.DeleteMedia)

		admin.GET("/subscribers", h.ListSubscribers)
		admin.DELETE("/subscribers/:id", h.DeleteSubscriber)

		admin.GET("/newsletters", h.ListNewsletters)
		admin.POST("/newsletters", h.CreateNewsletter)
		admin.PUT("/newsletters/:id", h.UpdateNewsletter)
		admin.POST("/newsletters/:id/send", h.SendNewsletter)
		admin.DELETE("/newsletters/:id", h.DeleteNewsletter)

		admin.GET("/messages", h.ListContactMessages)
		admin.PATCH("/messages/:id/read", h.MarkContactMessageRead)

		admin.GET("/stats", h.GetDashboardStats)
		admin.GET("/live", h.Live)

		admin.GET("/cache", h.GetCacheInfo)
		admin.POST("/cache/invalidate", h.InvalidateCache)
		admin.POST("/cache/purge", h.PurgeExpired)
		admin.DELETE("/cache", h.ClearCache)
	}

	return ginRouter
}
