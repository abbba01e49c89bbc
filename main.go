package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"loja/internal/handlers"
	"loja/internal/repositories"
	"loja/internal/services"
	"loja/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "loja.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	dbDriver := viper.GetString("DB_DRIVER")
	databaseDSN := viper.GetString("DATABASE_DSN")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Database ---
	db, err := openDatabase(dbDriver, databaseDSN)
	if err != nil {
		log.Fatalf("Failed to open database (%s): %v", dbDriver, err)
	}
	if err := repositories.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	// --- RabbitMQ (optional; blank URL disables events) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, event publishing disabled")
	}

	app := buildApp(db, mqClient)

	// --- Event logger consumer ---
	if mqClient != nil {
		if err := mqClient.Consume("loja.event_log", "#", rabbitmq.LogEvents); err != nil {
			log.Printf("Failed to start event log consumer: %v", err)
		}
	}

	// --- Start HTTP server with graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", appPort)
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// buildApp wires repositories, services and handlers into a Fiber app.
// mq may be nil to run without the broker.
func buildApp(db *gorm.DB, mq services.EventPublisher) *fiber.App {
	productRepo := repositories.NewGormProductRepository(db)
	orderRepo := repositories.NewGormOrderRepository(db)
	customerRepo := repositories.NewGormCustomerRepository(db)

	productService := services.NewProductService(productRepo, mq)
	orderService := services.NewOrderService(orderRepo, productRepo, customerRepo, mq)
	customerService := services.NewCustomerService(customerRepo)

	app := fiber.New()
	app.Use(logger.New())
	app.Use(recover.New())

	apiV1 := app.Group("/api/v1")
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1)
	handlers.NewCustomerHandler(customerService).RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}
