package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"prompt-api/internal/config"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	GenerateHandler *GenerateHandler
	Config          *config.Config
	Gatherer        prometheus.Gatherer
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouterConfig) {
	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "healthy",
			"service":         "prompt-api",
			"deployment_mode": config.GetDeploymentMode(),
			"default_model":   cfg.Config.Bedrock.DefaultModelID,
		})
	})

	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	{
		v1.POST("/generate", cfg.GenerateHandler.Generate)
		v1.OPTIONS("/generate", cfg.GenerateHandler.Generate)
	}
}
