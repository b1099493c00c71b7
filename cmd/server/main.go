package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ptyoiy/tracker-sub000/internal/analysis"
	"github.com/ptyoiy/tracker-sub000/internal/api"
	"github.com/ptyoiy/tracker-sub000/internal/config"
	"github.com/ptyoiy/tracker-sub000/internal/database"
	"github.com/ptyoiy/tracker-sub000/internal/handler"
	"github.com/ptyoiy/tracker-sub000/internal/providers"
	"github.com/ptyoiy/tracker-sub000/internal/repository"
	"github.com/ptyoiy/tracker-sub000/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Provider clients are constructed once from config and injected; the
	// pipeline itself never reads environment state.
	routingClient := providers.NewRoutingClient(
		cfg.RoutingBaseURL, cfg.RoutingAPIKey,
		cfg.TransitBaseURL, cfg.TransitAPIKey,
		logger,
	)
	isochroneClient := providers.NewIsochroneClient(cfg.IsochroneBaseURL, cfg.IsochroneAPIKey, logger)
	geocodeClient := providers.NewGeocodeClient(cfg.GeocodeBaseURL, cfg.GeocodeAPIKey, logger)

	geocodeCache := repository.NewGeocodeCache(db)
	geocodeService := service.NewGeocodeService(geocodeCache, geocodeClient, logger)

	thresholds := analysis.Thresholds{
		WalkingMaxKmh:        cfg.WalkingMaxKmh,
		TransitMaxKmh:        cfg.TransitMaxKmh,
		PedestrianGateMaxKmh: cfg.PedestrianGateMaxKmh,
		VehicleGateMinKmh:    cfg.VehicleGateMinKmh,
	}

	analysisService := service.NewAnalysisService(
		routingClient, geocodeService, logger,
		thresholds, cfg.ToleranceRatio, cfg.FetchTimeout,
	)
	reachabilityService := service.NewReachabilityService(isochroneClient, logger, cfg.FetchTimeout)

	analysisHandler := handler.NewAnalysisHandler(analysisService, reachabilityService)
	geocodeHandler := handler.NewGeocodeHandler(geocodeService)

	router := api.SetupRouter(cfg, logger, analysisHandler, geocodeHandler)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
