package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menu_api/internal/config"
	"menu_api/internal/handler"
	"menu_api/internal/middleware"
	"menu_api/internal/repository"
	"menu_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	storeCfg, err := config.LoadStoreConfig()
	if err != nil {
		log.Fatalf("Failed to load store config: %v", err)
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	allowedOrigins := middleware.ParseAllowedOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// --- Storage Gateway ---
	db := config.NewDatabase(storeCfg)
	if err := db.Connect(context.Background()); err != nil {
		log.Fatalf("Failed to connect to store: %v", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from store: %v", err)
		}
	}()

	// --- Index Bootstrap ---
	if err := config.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)

	// --- Initialize Services ---
	userService := service.NewUserService(userRepo)
	itemService := service.NewItemService(itemRepo)

	// --- Initialize Handlers ---
	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(itemService)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	// --- Register Routes ---
	apiGroup := router.Group("/api")
	userHandler.RegisterUserRoutes(apiGroup)
	itemHandler.RegisterItemRoutes(apiGroup)

	// Health check endpoint; reports process liveness without probing the store
	apiGroup.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
