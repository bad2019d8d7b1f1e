package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopadmin/internal/config"
	"shopadmin/internal/database"
	"shopadmin/internal/media"
	"shopadmin/internal/models"
	"shopadmin/internal/repositories"
	"shopadmin/internal/server"
	"shopadmin/internal/services"
	"shopadmin/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

var seed bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard and API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&seed, "seed", false, "insert sample products when the catalog is empty")
}

func serve(cfg *config.Config) error {
	ctx := context.Background()

	pool, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := pool.Close(ctx); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()
	if err := pool.Migrate(ctx); err != nil {
		return err
	}

	repos, err := repositories.New(pool)
	if err != nil {
		return err
	}
	if seed {
		seedProducts(ctx, repos.Products)
	}

	uploader, err := newUploader(cfg)
	if err != nil {
		return err
	}

	// Leave the interface nil when events are off so services skip publishing.
	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange})
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeCatalogEvents(logCatalogEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	app, err := server.NewApp(cfg, server.Deps{
		Pool:      pool,
		Repos:     repos,
		Uploader:  uploader,
		Publisher: publisher,
	})
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.AppPort)
		listenErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}

func newUploader(cfg *config.Config) (media.Uploader, error) {
	switch cfg.MediaDriver {
	case config.MediaCloudinary:
		return media.NewCloudinaryUploader(media.CloudinaryConfig{URL: cfg.CloudinaryURL})
	case config.MediaDisk:
		return media.NewOSDiskUploader(cfg.PublicDir, cfg.UploadPathPrefix)
	}
	return nil, fmt.Errorf("unknown media driver %q", cfg.MediaDriver)
}

// logCatalogEvent records events from the broker. Orphaned uploads are
// called out so they can be cleaned up by hand.
func logCatalogEvent(msg amqp.Delivery) error {
	var event models.CatalogEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("malformed catalog event: %w", err)
	}
	if event.Type == models.EventImagesOrphaned {
		log.Printf("Orphaned uploads (%s): %v", event.Reason, event.Images)
		return nil
	}
	log.Printf("Received %s event for %s (tag %d)", event.Type, event.ResourceID, msg.DeliveryTag)
	return nil
}

// seedProducts populates an empty catalog with some initial data.
func seedProducts(ctx context.Context, repo repositories.ProductRepository) {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		log.Printf("Error checking catalog before seeding: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	products := []models.Product{
		{Name: "Laptop", Details: "High performance laptop", Price: decimal.NewFromInt(1200), Quantity: 10, Color: "#1f2937", Status: models.StatusActive},
		{Name: "Keyboard", Details: "Mechanical keyboard", Price: decimal.NewFromInt(75), Quantity: 25, Color: "#000000", Status: models.StatusActive},
		{Name: "Mouse", Details: "Ergonomic wireless mouse", Price: decimal.NewFromInt(25), Quantity: 50, Color: "#9ca3af", Status: models.StatusActive},
	}
	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
			continue
		}
		log.Printf("Seeded product: %s (ID: %s)", products[i].Name, products[i].ID)
	}
}
