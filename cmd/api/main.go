package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"agro-advisory-api/config"
	"agro-advisory-api/handlers"
	"agro-advisory-api/logger"
	"agro-advisory-api/middleware"
	"agro-advisory-api/ml/disease"
	"agro-advisory-api/ml/sampling"
	"agro-advisory-api/ml/soil"
	"agro-advisory-api/ml/weather"
	"agro-advisory-api/models"
	"agro-advisory-api/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	db, err := openDatabase(cfg.Database)
	if err != nil {
		logg.Fatal("database connection failed", "driver", cfg.Database.Driver, "error", err)
	}
	if err := db.AutoMigrate(&models.Prediction{}); err != nil {
		logg.Fatal("database migration failed", "error", err)
	}

	cache, err := services.NewCacheService(cfg.Redis, logg)
	if err != nil {
		logg.Warn("redis unavailable, caching and live feed disabled", "error", err)
	}
	defer cache.Close()

	store, err := services.NewImageStore(cfg.Uploads, logg)
	if err != nil {
		logg.Fatal("upload directory setup failed", "dir", cfg.Uploads.Dir, "error", err)
	}

	scorer, err := disease.NewScorer(sampling.New())
	if err != nil {
		logg.Fatal("disease scorer setup failed", "error", err)
	}

	classifier, err := soil.NewClassifier(soil.Config{
		CachePath: cfg.Model.CachePath,
		Seed:      cfg.Model.Seed,
		Samples:   cfg.Model.Samples,
		Trees:     cfg.Model.Trees,
	}, logg)
	if err != nil {
		logg.Fatal("soil classifier setup failed", "error", err)
	}

	engine := weather.NewEngine(sampling.New())
	ledger := services.NewLedgerService(db, cache, logg)

	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))

	registerRoutes(router, cache, ledger, store, scorer, classifier, engine, logg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go cleanupLoop(ctx, store, logg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logg.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown failed", "error", err)
	}
}

func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func registerRoutes(router *gin.Engine, cache *services.CacheService, ledger *services.LedgerService,
	store *services.ImageStore, scorer *disease.Scorer, classifier *soil.Classifier,
	engine *weather.Engine, logg *logger.Logger) {

	diseaseHandler := handlers.NewDiseaseHandler(scorer, ledger, store, logg)
	soilHandler := handlers.NewSoilHandler(classifier, ledger, logg)
	weatherHandler := handlers.NewWeatherHandler(engine, ledger, logg)
	historyHandler := handlers.NewHistoryHandler(ledger, cache, logg)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Agro Advisory API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"disease_prediction": "POST /predict/disease",
				"disease_info":       "GET /predict/disease/info/:name",
				"soil_prediction":    "POST /predict/soil",
				"soil_importance":    "GET /predict/soil/importance",
				"weather_advisory":   "GET /predict/weather",
				"weather_forecast":   "GET /predict/weather/forecast",
				"history":            "GET /predict/history",
				"statistics":         "GET /predict/statistics",
				"live_feed":          "GET /ws/live",
			},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "UP",
			"message": "Agro Advisory API is running",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	predict := router.Group("/predict")
	{
		predict.POST("/disease", diseaseHandler.Predict)
		predict.GET("/disease/info/:name", diseaseHandler.Info)
		predict.POST("/soil", soilHandler.Predict)
		predict.GET("/soil/importance", soilHandler.Importance)
		predict.GET("/weather", weatherHandler.Predict)
		predict.GET("/weather/forecast", weatherHandler.Forecast)
		predict.GET("/history", historyHandler.List)
		predict.GET("/statistics", historyHandler.Statistics)
	}

	router.GET("/ws/live", handlers.LiveWebSocket(cache, logg))
}

// cleanupLoop removes stale uploads once an hour until shutdown.
func cleanupLoop(ctx context.Context, store *services.ImageStore, logg *logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.CleanupStale(); n > 0 {
				logg.Info("removed stale uploads", "count", n)
			}
		}
	}
}
