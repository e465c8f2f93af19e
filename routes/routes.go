package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"

	"callpilot/campaign"
	controller "callpilot/controllers"
	"callpilot/middleware"
)

// SetupRoutes wires the operator API onto the fiber app.
func SetupRoutes(app *fiber.App, customers *controller.CustomerController, campaigns *controller.CampaignController, executor *campaign.Executor) {
	api := app.Group("/api", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Customer database
	api.Get("/customers", customers.ListCustomers)
	api.Post("/customers", customers.CreateCustomer)
	api.Post("/customers/import", customers.ImportCustomers)
	api.Get("/customers/export", customers.ExportCustomers)
	api.Get("/stats", customers.GetStats)

	// Campaign control
	api.Post("/campaign/start", middleware.CampaignRateLimiter(), campaigns.StartCampaign)
	api.Post("/campaign/stop", campaigns.StopCampaign)
	api.Get("/campaign/status", campaigns.CampaignStatus)
	api.Get("/campaign/results", campaigns.CampaignResults)

	// Live progress stream for dashboards
	api.Use("/campaign/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/campaign/ws", websocket.New(controller.CampaignProgressWS(executor)))
}
