package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"quizfunnel/api/database"
	"quizfunnel/api/handlers"
	"quizfunnel/api/middleware"
	"quizfunnel/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Initialize PostgreSQL (quizzes, sessions, leads) ---
	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	// --- Initialize ClickHouse (tracking events) ---
	chClient, err := database.NewClickHouseDB()
	if err != nil {
		log.Fatalf("Failed to initialize ClickHouse database: %v", err)
	}
	defer chClient.Close()

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSchema()
	if err := dbClient.EnsureSchema(schemaCtx); err != nil {
		log.Fatalf("Failed to ensure PostgreSQL schema: %v", err)
	}
	if err := chClient.EnsureSchema(schemaCtx); err != nil {
		log.Fatalf("Failed to ensure ClickHouse schema: %v", err)
	}

	// --- Initialize Stores ---
	quizStore := store.NewQuizStore(dbClient.DB)
	leadStore := store.NewLeadStore(dbClient.DB)
	eventStore := store.NewEventStore(dbClient, chClient)
	analyticsStore := store.NewAnalyticsStore(dbClient, chClient)

	// --- Initialize Handlers ---
	quizHandlers := handlers.NewQuizHandlers(quizStore, analyticsStore, leadStore)
	trackingHandlers := handlers.NewTrackingHandlers(eventStore, leadStore, analyticsStore)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Quiz registration and embeddable tracker snippet
		api.POST("/quiz/register", quizHandlers.RegisterQuiz)
		api.GET("/tracker/:tracking_code", quizHandlers.TrackerScript)

		// Tracking writes from quiz pages
		api.POST("/event", trackingHandlers.TrackEvent)
		api.POST("/lead", trackingHandlers.SubmitLead)

		// On-demand reads for the dashboard
		api.GET("/quiz/:quiz_id", quizHandlers.GetQuiz)
		api.GET("/quiz/:quiz_id/analytics", quizHandlers.GetAnalytics)
		api.GET("/quiz/:quiz_id/leads", quizHandlers.ListLeads)
		api.GET("/quiz/:quiz_id/leads/export", quizHandlers.ExportLeads)
		api.GET("/lead/:lead_id", trackingHandlers.GetLeadDetail)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Quiz tracker API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
