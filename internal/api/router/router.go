package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"taskhub/internal/api/handler"
	"taskhub/internal/api/middleware"
	"taskhub/internal/pkg/config"
	"taskhub/internal/repository"
)

// Setup builds the admin HTTP engine.
func Setup(cfg *config.AdminConfig, db *gorm.DB, sessions func() int64) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())

	repos := repository.NewRepositories(db)
	statusHandler := handler.NewStatusHandler(repos, sessions)

	r.GET("/healthz", statusHandler.Healthz)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/stats", statusHandler.Stats)
	}

	return r
}
