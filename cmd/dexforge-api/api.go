// Package main provides the DexForge API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/dexforge/dexforge/pkg/eventbus"
	"github.com/dexforge/dexforge/pkg/persistence"
	"github.com/dexforge/dexforge/pkg/registry"
	"github.com/dexforge/dexforge/pkg/services"
	"github.com/dexforge/dexforge/pkg/tokenlist"
	"github.com/dexforge/dexforge/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	eventBus    eventbus.EventBus
	tokens      *tokenlist.Catalog
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	registry *registry.Registry,
	eventBus eventbus.EventBus,
	tokens *tokenlist.Catalog,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		registry:    registry,
		eventBus:    eventBus,
		tokens:      tokens,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	flowService := services.NewFlow(a.persistence, a.eventBus)
	nodeService := services.NewNode(a.persistence, a.registry, a.eventBus)
	publishingService := services.NewPublishing(a.persistence, a.registry, a.eventBus)

	handlers := web.NewAPIHandlers(flowService, nodeService, publishingService, a.validate, a.registry, a.tokens)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("DexForge API")
	})

	app.Get("/templates", handlers.GetTemplates)
	app.Get("/templates/:type", handlers.GetTemplate)
	app.Get("/tokens", handlers.GetTokens)

	f := app.Group("/flows")
	f.Get("/", handlers.GetFlows)
	f.Post("/", handlers.CreateFlow)
	f.Get("/:id", handlers.GetFlow)
	f.Patch("/:id", handlers.UpdateFlow)
	f.Delete("/:id", handlers.DeleteFlow)
	f.Post("/:id/publish", handlers.PublishFlow)
	f.Post("/:id/validate", handlers.ValidateFlow)

	// Node endpoints:
	f.Get("/:id/nodes", handlers.GetNodes)
	f.Post("/:id/nodes", handlers.CreateNode)
	f.Get("/:id/nodes/:nodeId", handlers.GetNode)
	f.Patch("/:id/nodes/:nodeId", handlers.UpdateNode)
	f.Delete("/:id/nodes/:nodeId", handlers.DeleteNode)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
