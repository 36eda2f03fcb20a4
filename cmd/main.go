package main

import (
	"context"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/poofware/vacancy-watch/internal/adapters"
	"github.com/poofware/vacancy-watch/internal/app"
	"github.com/poofware/vacancy-watch/internal/config"
	"github.com/poofware/vacancy-watch/internal/controllers"
	"github.com/poofware/vacancy-watch/internal/repositories"
	"github.com/poofware/vacancy-watch/internal/routes"
	"github.com/poofware/vacancy-watch/internal/services"
	"github.com/poofware/vacancy-watch/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize vacancy-watch:", err)
	}
	defer application.Close()

	propRepo := repositories.NewPropertyRepository(application.DB)
	snapRepo := repositories.NewSnapshotRepository(application.DB)
	eventRepo := repositories.NewUnitEventRepository(application.DB)

	adapter, err := adapters.NewHTTPJSONAdapter(adapters.HTTPJSONAdapterOptions{
		Name:    cfg.AdapterName,
		BaseURL: cfg.AdapterBaseURL,
		Timeout: cfg.FetchTimeout,
	})
	if err != nil {
		utils.Logger.Fatal("Failed to build extraction adapter:", err)
	}

	retry := adapters.RetryPolicy{
		MaxAttempts:    cfg.FetchMaxAttempts,
		InitialBackoff: cfg.FetchBackoff,
		AttemptTimeout: cfg.FetchTimeout,
		RunDeadline:    cfg.PropertyRunDeadline,
	}
	runService := services.NewRunService(snapRepo, eventRepo, retry)
	batchService := services.NewBatchService(propRepo, runService, adapter, cfg.BatchConcurrency)

	healthController := controllers.NewHealthController(application)
	propertyController := controllers.NewPropertyController(propRepo)
	runsController := controllers.NewRunsController(propRepo, runService, batchService, adapter, cfg.SourceLabel)
	inventoryController := controllers.NewInventoryController(propRepo, snapRepo, eventRepo)

	router := mux.NewRouter()

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Properties, propertyController.CreatePropertyHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.Properties, propertyController.ListPropertiesHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Property, propertyController.GetPropertyHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.RunProperty, runsController.RunPropertyHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.RunBatch, runsController.RunBatchHandler).Methods(http.MethodPost)

	router.HandleFunc(routes.PropertySnapshots, inventoryController.ListSnapshotsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertySnapshotByDay, inventoryController.GetSnapshotHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertyEvents, inventoryController.ListEventsHandler).Methods(http.MethodGet)

	c := cron.New()
	_, cronErr := c.AddFunc(cfg.BatchCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
		defer cancel()
		if _, e := batchService.RunAll(ctx, time.Time{}, cfg.SourceLabel); e != nil {
			utils.Logger.WithError(e).Error("Scheduled batch sweep failed")
		}
	})
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule batch sweep cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("vacancy-watch failed to start:", err)
	}
}
