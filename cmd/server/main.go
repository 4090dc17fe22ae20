package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/mkvist/shelfmark/internal/config"
	"github.com/mkvist/shelfmark/internal/handlers"
	"github.com/mkvist/shelfmark/internal/middleware"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/types"

	_ "github.com/mkvist/shelfmark/docs/api" // Swagger docs
)

// @title Shelfmark API
// @version 1.0.0
// @description Media catalog and rating service with pluggable persistence
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/mkvist/shelfmark

// @host localhost:3000
// @BasePath /api
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the store backend selected by DB_TYPE
	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("shelfmark")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	userHandler := &handlers.UserHandler{Store: st, Cfg: cfg}
	workHandler := &handlers.WorkHandler{Store: st, Cfg: cfg}
	ratingHandler := &handlers.RatingHandler{Store: st, Cfg: cfg}
	shelfHandler := &handlers.ShelfHandler{Store: st, Cfg: cfg}
	searchHandler := &handlers.SearchHandler{Store: st, Cfg: cfg}
	recHandler := &handlers.RecommendationHandler{Store: st, Cfg: cfg}
	healthHandler := &handlers.HealthHandler{Store: st, Cfg: cfg}

	app.Get("/health", healthHandler.Check)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// User and auth routes
	api.Post("/users", userHandler.Signup)
	api.Post("/users/login", userHandler.Login)
	api.Get("/users/:id", userHandler.GetUser)
	api.Put("/users/:id", userHandler.UpdateUser)
	api.Delete("/users/:id", userHandler.DeleteUser)
	api.Get("/users/:id/ratings", userHandler.GetUserRatings)

	// Follow graph routes
	api.Post("/users/:id/follow/:targetId", userHandler.Follow)
	api.Delete("/users/:id/follow/:targetId", userHandler.Unfollow)
	api.Get("/users/:id/following", userHandler.GetFollowing)
	api.Get("/users/:id/followers", userHandler.GetFollowers)

	// Catalog routes
	api.Post("/works", workHandler.CreateWork)
	api.Get("/works", workHandler.ListWorks)
	api.Get("/works/:id", workHandler.GetWork)
	api.Put("/works/:id", workHandler.UpdateWork)
	api.Delete("/works/:id", workHandler.DeleteWork)

	// Rating routes
	api.Post("/works/:id/ratings", ratingHandler.RateWork)
	api.Get("/works/:id/rating", ratingHandler.GetWorkRating)
	api.Put("/ratings/:id", ratingHandler.UpdateRating)
	api.Delete("/ratings/:id", ratingHandler.DeleteRating)

	// Shelf routes
	api.Post("/shelves", shelfHandler.CreateShelf)
	api.Get("/shelves/:id", shelfHandler.GetShelf)
	api.Put("/shelves/:id", shelfHandler.UpdateShelf)
	api.Delete("/shelves/:id", shelfHandler.DeleteShelf)
	api.Post("/shelves/:id/works/:workId", shelfHandler.AddWork)
	api.Delete("/shelves/:id/works/:workId", shelfHandler.RemoveWork)
	api.Get("/users/:id/shelves", shelfHandler.ListUserShelves)

	// Search and recommendations
	api.Get("/search", searchHandler.Search)
	api.Get("/users/:id/recommendations", recHandler.GetRecommendations)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s (store: %s)", port, cfg.DBType)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// Domain errors carry their own status mapping
	var de *types.DomainError
	if errors.As(err, &de) {
		message = de.Message
		errorType = string(de.Kind)
		switch de.Kind {
		case types.KindNotFound:
			code = fiber.StatusNotFound
		case types.KindAuthentication:
			code = fiber.StatusUnauthorized
		default:
			code = fiber.StatusBadRequest
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
