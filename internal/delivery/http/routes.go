package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AladdinPP/prox-moble/config"
	"github.com/AladdinPP/prox-moble/internal/usecase"
)

// registerValidators adds custom binding rules shared by all request types.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("zipcode", func(fl validator.FieldLevel) bool {
			return usecase.ValidZipCode(fl.Field().String())
		})
	}
}

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	registerValidators()

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.PerIP > 0 {
		router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	}

	// Health check and metrics
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		cart := v1.Group("/cart")
		{
			cart.POST("/optimize", handler.OptimizeCart)
			cart.GET("/last", handler.LastResult)
		}

		deals := v1.Group("/deals")
		{
			deals.POST("/search", handler.SearchDeals)
		}

		carts := v1.Group("/carts")
		{
			carts.POST("", handler.SaveCart)
			carts.GET("", handler.ListCarts)
			carts.DELETE("/:id", handler.DeleteCart)
		}
	}

	return router
}
