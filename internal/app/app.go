package app

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/oliweira/back-mrg/internal/handlers"
	"github.com/oliweira/back-mrg/internal/middleware"
	"github.com/oliweira/back-mrg/internal/repositories"
	"github.com/oliweira/back-mrg/internal/services"
)

// DefaultBasePath is where the product routes are mounted when none is given.
const DefaultBasePath = "/api/products"

// Deps are the collaborators the HTTP application is built from. They are
// owned by the caller, which is also responsible for closing them.
type Deps struct {
	Repository repositories.ProductRepository
	// Publisher may be nil to disable product events.
	Publisher services.EventPublisher
	// HealthCheck may be nil, in which case /health always reports healthy.
	HealthCheck func(ctx context.Context) error
	BasePath    string
}

// NewApp wires the service, handlers and middleware into a fiber.App.
func NewApp(deps Deps) *fiber.App {
	basePath := deps.BasePath
	if basePath == "" {
		basePath = DefaultBasePath
	}

	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true

	productService := services.NewProductService(deps.Repository, deps.Publisher)
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New(fiber.Config{
		AppName:      "back-mrg",
		ErrorHandler: middleware.ErrorHandler,
	})
	middleware.Register(app)

	productHandler.RegisterRoutes(app.Group(basePath))

	app.Get("/health", func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		if deps.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.HealthCheck(ctx); err != nil {
				log.Printf("Health check failed: %v", err)
				status, code = "unhealthy", fiber.StatusServiceUnavailable
			}
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}
