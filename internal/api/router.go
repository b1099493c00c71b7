package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ptyoiy/tracker-sub000/internal/config"
	"github.com/ptyoiy/tracker-sub000/internal/handler"
	"github.com/ptyoiy/tracker-sub000/internal/middleware"
)

// SetupRouter wires middleware and routes.
func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	analysisHandler *handler.AnalysisHandler,
	geocodeHandler *handler.GeocodeHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.Logger(logger))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Tracker Analysis API is running",
		})
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)

	api := r.Group("/api/v1")
	api.Use(limiter.Middleware())
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		analysis := api.Group("/analysis")
		{
			analysis.POST("/segments", analysisHandler.AnalyzeSegments)
			analysis.POST("/reachability", analysisHandler.ComputeReachability)
		}

		geocode := api.Group("/geocode")
		{
			geocode.GET("/reverse", geocodeHandler.ReverseGeocode)
		}
	}

	return r
}
