package webapi

import (
	"log/slog"

	ledgersvc "github.com/amirasaad/bankledger/pkg/service/ledger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp builds the Fiber application with all routes and middleware.
func NewApp(svc *ledgersvc.Service, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "bankledger",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(requestid.New())
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	AccountRoutes(app, svc, logger)

	return app
}
