package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cyber_portal/internal/config"
	"cyber_portal/internal/handler"
	"cyber_portal/internal/middleware"
	"cyber_portal/internal/repository"
	"cyber_portal/internal/service"
	"cyber_portal/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load(true)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// --- Store ---
	startCtx, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	st, closeStore, err := config.OpenStore(startCtx, cfg)
	cancelStart()
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer closeStore()

	if err := repository.InitDefaults(context.Background(), st); err != nil {
		log.Fatalf("Failed to seed defaults: %v", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(st)
	complaintRepo := repository.NewComplaintRepository(st)
	feedbackRepo := repository.NewFeedbackRepository(st)
	alertCache := repository.NewAlertCache(st)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.LoginRedirectDelay)
	complaintService := service.NewComplaintService(complaintRepo, feedbackRepo, service.NewIDGenerator())
	feedbackService := service.NewFeedbackService(feedbackRepo)
	alertService := service.NewAlertService(service.NewHTTPAlertSource(cfg.AlertsURL, cfg.AlertsTimeout), alertCache)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, jwtUtil, st, userRepo)
	complaintHandler := handler.NewComplaintHandler(complaintService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	alertHandler := handler.NewAlertHandler(alertService)

	// --- Setup Gin Router ---
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Register Routes ---
	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.SessionMiddleware(jwtUtil, st, userRepo))
	authHandler.RegisterAuthRoutes(apiGroup)
	complaintHandler.RegisterComplaintRoutes(apiGroup, middleware.CitizenMiddleware(), middleware.PoliceMiddleware())
	feedbackHandler.RegisterFeedbackRoutes(apiGroup)
	alertHandler.RegisterAlertRoutes(apiGroup)

	router.GET("/health", func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "store": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": "healthy", "backend": cfg.StoreBackend})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("INFO: Server starting on port %s (%s store)", cfg.ServerPort, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("INFO: Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("INFO: Server exiting")
}
