package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/oliweira/back-mrg/internal/app"
	"github.com/oliweira/back-mrg/internal/config"
	"github.com/oliweira/back-mrg/internal/database"
	"github.com/oliweira/back-mrg/internal/repositories"
	"github.com/oliweira/back-mrg/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Storage ---
	// The service does not accept requests until the pool has answered a ping.
	deps := app.Deps{BasePath: cfg.APIBasePath}
	var db *gorm.DB
	if cfg.DBDriver == config.DriverMemory {
		log.Println("Using in-memory product repository; data is lost on exit.")
		deps.Repository = repositories.NewMemoryProductRepository()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err = database.Open(ctx, cfg)
		cancel()
		if err != nil {
			log.Fatalf("Could not connect to %s database: %v", cfg.DBDriver, err)
		}
		log.Printf("Connected to %s database.", cfg.DBDriver)

		deps.Repository = repositories.NewGORMProductRepository(db)
		deps.HealthCheck = func(ctx context.Context) error { return database.Ping(ctx, db) }
	}

	// --- Product events ---
	var mqClient *rabbitmq.Client
	if cfg.EventsEnabled() {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		deps.Publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL is not set. Product events are disabled.")
	}

	fiberApp := app.NewApp(deps)

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("API server listening on %s, products at %s", cfg.AppPort, cfg.APIBasePath)
		if err := fiberApp.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := fiberApp.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			log.Printf("Error closing RabbitMQ client: %v", err)
		}
	}
	if db != nil {
		if err := database.Close(db); err != nil {
			log.Printf("Error closing database pool: %v", err)
		}
	}
	log.Println("Server gracefully stopped")
}
