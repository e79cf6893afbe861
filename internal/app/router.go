package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"escapada/internal/handler"
	"escapada/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	ProfileHandler  *handler.ProfileHandler
	CatalogHandler  *handler.CatalogHandler
	TripHandler     *handler.TripHandler
	CheckoutHandler *handler.CheckoutHandler
	BookingHandler  *handler.BookingHandler
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Profile routes.
		profiles := v1.Group("/profiles")
		{
			profiles.POST("/register", deps.ProfileHandler.Register)
			profiles.GET("", deps.ProfileHandler.GetAll)
		}

		// Catalog routes.
		services := v1.Group("/services")
		{
			services.POST("", deps.CatalogHandler.Publish)
			services.GET("", deps.CatalogHandler.GetAll)
			services.GET("/:id", deps.CatalogHandler.Get)
		}

		// Trip routes.
		trips := v1.Group("/trips")
		{
			trips.POST("", deps.TripHandler.Create)
			trips.GET("/active", deps.TripHandler.GetActive)
			trips.GET("/:id", deps.TripHandler.Get)
			trips.POST("/:id/cancel", deps.TripHandler.Cancel)
		}

		// Checkout routes.
		checkout := v1.Group("/checkout")
		{
			checkout.POST("/card-check", deps.CheckoutHandler.CardCheck)
			checkout.GET("/quote", deps.CheckoutHandler.Quote)
			checkout.POST("/confirm", deps.CheckoutHandler.Confirm)
		}

		// Booking routes.
		bookings := v1.Group("/bookings")
		{
			bookings.GET("", deps.BookingHandler.GetAll)
			bookings.GET("/:id", deps.BookingHandler.Get)
			bookings.POST("/:id/redeem", deps.BookingHandler.Redeem)
		}
	}

	return router
}
