package main

import (
	"log"
	"os"
	"path/filepath"

	config "campus-energy-api/configs"
	"campus-energy-api/internal/database"
	"campus-energy-api/pkg/handlers"
	"campus-energy-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.LoadConfig()

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create database directory %s: %v", dir, err)
		}
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	r := gin.Default()

	// Services
	monitoringService := services.NewMonitoringService()
	forecastService := services.NewForecastService(nil)
	ingestionService := services.NewIngestionService(db, forecastService)
	chartService := services.NewChartService(db)

	// Handlers
	dashboardHandler := handlers.NewDashboardHandler(db)
	predictionHandler := handlers.NewPredictionHandler(db)
	uploadHandler := handlers.NewUploadHandler(ingestionService, cfg.UploadDir)
	chartHandler := handlers.NewChartHandler(chartService)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	// Middleware
	r.Use(monitoringService.LoggingMiddleware())
	r.Use(cors.Default())

	// If the store is empty, ingest the configured default workbook. Runs in
	// the background like any other ingestion; failures are logged, not fatal.
	go func() {
		if err := ingestionService.SeedIfEmpty(cfg.SeedFilePath); err != nil {
			log.Printf("Error seeding database: %v", err)
		}
	}()

	r.GET("/health", handlers.HealthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/upload", uploadHandler.Upload)

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
			dashboard.GET("/yearly-trends", dashboardHandler.GetYearlyTrends)
			dashboard.GET("/monthly-trends", dashboardHandler.GetMonthlyTrends)
			dashboard.GET("/top-consumers", dashboardHandler.GetTopConsumers)
			dashboard.GET("/anomalies", dashboardHandler.GetAnomalies)
		}

		v1.GET("/predictions", predictionHandler.GetPredictions)
		v1.GET("/locations", dashboardHandler.GetLocations)

		charts := v1.Group("/charts")
		{
			charts.GET("/trends", chartHandler.GetTrendChart)
		}

		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}
	}

	log.Printf("Starting campus-energy-api server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
