package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/learnflow/learnflow/internal/handlers"
	"github.com/learnflow/learnflow/internal/logger"
	"github.com/learnflow/learnflow/internal/middleware"
)

// RouterConfig carries the handlers wired into the router.
type RouterConfig struct {
	Log             *logger.Logger
	GenerateHandler *handlers.GenerateHandler
	HealthHandler   *handlers.HealthHandler
}

// NewRouter builds the gin engine with CORS, request-ID, and logging
// middleware, and registers all routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Log))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Requested-With"},
	}))

	router.GET("/health", cfg.HealthHandler.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/generate", cfg.GenerateHandler.Generate)
	}

	return router
}
