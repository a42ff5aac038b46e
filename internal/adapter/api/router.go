package api

import (
	"hello-ai-ui/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "hello-ai-ui",
		ErrorHandler: ErrorHandler,
	})
}

func SetupRouter(app *fiber.App, handler *RelayHandler, cfg *config.Config) {
	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": cfg.AppVersion,
			"env":     cfg.Env,
		})
	})

	app.Get("/", HandleIndex)

	api := app.Group("/api", cors.New())
	api.Get("/chat", handler.HandleChat)
	api.Get("/chat/stream", handler.HandleChatStream)
	api.Get("/qa", handler.HandleQA)
	api.Get("/stats", handler.HandleStats)
}
