package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	_ "github.com/summitsquad321/TrailMap/docs"
	"github.com/summitsquad321/TrailMap/internal/config"
	"github.com/summitsquad321/TrailMap/internal/handlers"
	"github.com/summitsquad321/TrailMap/internal/metrics"
	"github.com/summitsquad321/TrailMap/internal/models"
	"github.com/summitsquad321/TrailMap/internal/repository"
	"github.com/summitsquad321/TrailMap/internal/services"
	"github.com/summitsquad321/TrailMap/internal/storage"
)

// @title TrailMap API
// @description Detection ingestion and aggregation service for wildlife trail cameras.
// @version 1.0
// @BasePath /api
func main() {
	cfg := InitConfig()
	db := ConnectDatabase(cfg)
	MigrateDatabase(db)

	cameraRepo := repository.NewCameraRepository(db)
	detectionRepo := repository.NewDetectionRepository(db)

	m := metrics.NewMetrics()
	cameraService := services.NewCameraService(cameraRepo)
	rollupService := services.NewRollupService(detectionRepo, m)
	ingestService := services.NewIngestService(cameraRepo, detectionRepo, m, rollupService)

	var archiveService *services.ArchiveService
	if cfg.ArchiveEnabled() {
		minioClient, err := storage.NewMinioClient(cfg)
		if err != nil {
			log.Fatalf("MinIO client initialization failed: %v", err)
		}
		archiveService = services.NewArchiveService(minioClient, cfg.MinioBucket)
	} else {
		log.Println("Ingest payload archive disabled (MINIO_ENDPOINT not set)")
	}

	app := fiber.New()

	// Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	cameraHandler := handlers.NewCameraHandler(cameraService)
	detectionHandler := handlers.NewDetectionHandler(detectionRepo, ingestService)
	rollupHandler := handlers.NewRollupHandler(rollupService, cameraService)
	ingestHandler := handlers.NewIngestHandler(ingestService, archiveService, cfg.IngestAPIToken)

	api := app.Group("/api")
	api.Post("/ingest", ingestHandler.IngestCSV)
	api.Get("/cameras", cameraHandler.ListCameras)
	api.Get("/cameras/nearby", cameraHandler.NearbyCameras)
	api.Post("/cameras", cameraHandler.CreateCamera)
	api.Patch("/cameras/:id", cameraHandler.UpdateCamera)
	api.Delete("/cameras/:id", cameraHandler.DeleteCamera)
	api.Get("/detections", detectionHandler.ListDetections)
	api.Post("/detections/reassign", detectionHandler.ReassignDetections)
	api.Get("/rollups", rollupHandler.GetRollups)

	api.Get("/swagger/*", swagger.HandlerDefault)

	// Add Health check endpoint
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	routes := app.GetRoutes()
	log.Println("Registered routes:")
	for _, r := range routes {
		log.Printf("  %s %s\n", r.Method, r.Path)
	}

	// Start the Fiber server
	port := cfg.AppPort
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.Printf("Server listening on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	return db
}

func MigrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(&models.Camera{}, &models.Detection{})
	if err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
}
