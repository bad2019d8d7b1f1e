// Package server assembles the Fiber application: API routes, dashboard
// pages, static uploads and the health check.
package server

import (
	"errors"
	"time"

	"shopadmin/internal/config"
	"shopadmin/internal/dashboard"
	"shopadmin/internal/database"
	"shopadmin/internal/handlers"
	"shopadmin/internal/media"
	"shopadmin/internal/middleware"
	"shopadmin/internal/repositories"
	"shopadmin/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps are the collaborators NewApp wires into the handlers.
type Deps struct {
	Pool     *database.Pool
	Repos    repositories.Set
	Uploader media.Uploader
	// Publisher is nil when events are disabled.
	Publisher services.EventPublisher
}

// NewApp builds the Fiber application for cfg.
func NewApp(cfg *config.Config, deps Deps) (*fiber.App, error) {
	if deps.Uploader == nil {
		return nil, errors.New("an uploader is required")
	}
	if deps.Repos.Products == nil || deps.Repos.Tests == nil || deps.Repos.Images == nil {
		return nil, errors.New("repositories are required")
	}

	productService := services.NewProductService(deps.Repos.Products, deps.Uploader, cfg.MediaFolder, deps.Publisher)
	imageService := services.NewImageService(deps.Repos.Images, deps.Uploader, cfg.UploadFolder, cfg.ImageSaveTimeout, deps.Publisher)
	testService := services.NewTestService(deps.Repos.Tests)

	productHandler := handlers.NewProductHandler(productService)
	uploadHandler := handlers.NewUploadHandler(imageService)
	testHandler := handlers.NewTestHandler(testService)
	dashboardHandler, err := dashboard.NewHandler(productService, imageService, cfg.MaxUploadBytes)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:      "shopadmin",
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    cfg.MaxUploadBytes,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	if cfg.MediaDriver == config.MediaDisk && cfg.UploadPathPrefix != "" {
		app.Static(cfg.UploadPathPrefix, cfg.PublicDir)
	}

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	uploadHandler.RegisterRoutes(api)
	testHandler.RegisterRoutes(api)

	dashboardHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		status, dbState := fiber.StatusOK, "connected"
		if deps.Pool != nil {
			if err := deps.Pool.Ping(c.UserContext()); err != nil {
				status, dbState = fiber.StatusServiceUnavailable, err.Error()
			}
		}
		health := "healthy"
		if status != fiber.StatusOK {
			health = "unhealthy"
		}
		return c.Status(status).JSON(fiber.Map{
			"status":   health,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbState,
		})
	})

	return app, nil
}
