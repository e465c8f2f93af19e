package main

import (
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"callpilot/campaign"
	"callpilot/classify"
	"callpilot/config"
	controller "callpilot/controllers"
	"callpilot/dialer"
	"callpilot/middleware"
	"callpilot/models"
	"callpilot/queue"
	"callpilot/routes"
	"callpilot/store"
)

func main() {
	// Initialize logger
	logger := log.New(os.Stdout, "CALLPILOT: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Error reporting is a no-op without a DSN
	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Persistence layer
	customerStore := store.NewCustomerStore(config.DB, log.New(os.Stdout, "STORE: ", log.LstdFlags))
	callLog := store.NewCallLog(config.DB, log.New(os.Stdout, "CALLLOG: ", log.LstdFlags))

	if config.AppConfig.SeedSampleData {
		seedSampleData(customerStore, logger)
	}

	// Campaign pipeline
	contactDialer := buildDialer(logger)
	executor := campaign.NewExecutor(
		customerStore,
		callLog,
		contactDialer,
		classify.NewKeywordClassifier(),
		config.AppConfig.AgentName,
		log.New(os.Stdout, "CAMPAIGN: ", log.LstdFlags),
	)
	queueBuilder := queue.NewBuilder(customerStore, log.New(os.Stdout, "QUEUE: ", log.LstdFlags))

	// Create Fiber app
	app := fiber.New()
	app.Use(middleware.CORS())

	customerCtrl := controller.NewCustomerController(customerStore, logger)
	campaignCtrl := controller.NewCampaignController(queueBuilder, executor, logger)
	routes.SetupRoutes(app, customerCtrl, campaignCtrl, executor)

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	// Start server
	logger.Printf("Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}

func buildDialer(logger *log.Logger) dialer.Dialer {
	dialerLogger := log.New(os.Stdout, "DIALER: ", log.LstdFlags)
	if config.AppConfig.DialerMode == "voice" {
		logger.Printf("Using voice pipeline dialer at %s", config.AppConfig.VoicePipelineURL)
		return dialer.NewVoicePipelineDialer(
			config.AppConfig.VoicePipelineURL,
			config.AppConfig.AgentName,
			config.AppConfig.CallTimeout,
			dialerLogger,
		)
	}
	logger.Printf("Using simulated dialer")
	return dialer.NewSimulatedDialer(
		config.AppConfig.AgentName,
		config.AppConfig.SimulatedCallTime,
		dialerLogger,
	)
}

// seedSampleData registers the starter prospects when the database is empty.
func seedSampleData(cs store.CustomerStore, logger *log.Logger) {
	stats, err := cs.GetStats()
	if err != nil {
		logger.Printf("Skipping sample data seed: %v", err)
		return
	}
	if stats.TotalCustomers > 0 {
		return
	}
	for _, customer := range models.SampleCustomers() {
		cust := customer
		if err := cs.Register(&cust); err != nil {
			logger.Printf("Failed to seed customer %s: %v", cust.Phone, err)
		}
	}
	logger.Printf("Seeded sample customers")
}
