package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mfong/awardcal/config"
	_ "github.com/mfong/awardcal/docs"
	"github.com/mfong/awardcal/internal/database"
	"github.com/mfong/awardcal/internal/handlers"
	"github.com/mfong/awardcal/internal/middleware"
	"github.com/mfong/awardcal/internal/repository"
	"github.com/mfong/awardcal/internal/searchclient"
	"github.com/mfong/awardcal/internal/services"
)

// @title AwardCal API
// @version 1.0
// @description Mileage-award availability aggregation: ring calendar, fare legend and itinerary tables over raw award-search rows.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Initialize database connection (reference catalogue only)
	db, err := database.New(ctx, cfg.PGURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Load the read-only reference catalogue once; it is shared across all
	// sessions and never mutated by the pipeline.
	refRepo := repository.NewReferenceRepository(db.Pool)
	catalog, err := refRepo.LoadCatalog(ctx)
	if err != nil {
		log.Fatalf("Failed to load reference catalogue: %v", err)
	}
	log.Infof("Loaded catalogue: %d engines, %d airlines, %d cabins",
		len(catalog.Engines), len(catalog.Airlines), len(catalog.Cabins))

	// Initialize the award-search backend client and session state
	client := searchclient.NewClient(cfg.SearchURL, cfg.SearchKey)
	sessions := services.NewSessionManager(catalog)

	// Initialize handlers
	searchHandler := handlers.NewSearchHandler(sessions, client, catalog)
	calendarHandler := handlers.NewCalendarHandler(sessions)

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.SessionID())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Search and filter routes
	router.POST("/searches", searchHandler.Search)
	router.POST("/results", searchHandler.Ingest)
	router.PUT("/filters", searchHandler.UpdateFilters)

	// Derived-view routes
	router.GET("/legend", calendarHandler.Legend)
	router.GET("/calendar", calendarHandler.Calendar)
	router.GET("/calendar/:date/itineraries", calendarHandler.DayItineraries)
	router.GET("/selection", calendarHandler.Selection)
	router.PUT("/selection/airlines/:code", calendarHandler.ToggleAirline)
	router.PUT("/selection/flights/:number", calendarHandler.ToggleFlight)

	// API docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exited")
}
