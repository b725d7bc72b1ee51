// Package routes wires the bridge's HTTP surface. Every endpoint is a thin
// adapter over one client operation; the client itself is not safe for
// concurrent use, so all handlers serialize on one mutex.
package routes

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	venmo "github.com/venmo-unofficial/venmo-go"
	"github.com/venmo-unofficial/venmo-go/internal/config"
	"github.com/venmo-unofficial/venmo-go/internal/logging"
	"github.com/venmo-unofficial/venmo-go/internal/middleware"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Client *venmo.Client
	Logger *slog.Logger
}

type api struct {
	mu     sync.Mutex
	client *venmo.Client
	log    *slog.Logger
}

// Setup configures middlewares and all bridge routes.
func Setup(app *fiber.App, d Deps) error {
	if d.Client == nil {
		return errors.New("client is required")
	}
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	RegisterHealthRoutes(app, d)

	a := &api{client: d.Client, log: d.Logger}

	v1 := app.Group("/api/v1")
	v1.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterSessionRoutes(v1, a)
	RegisterAccountRoutes(v1, a)
	RegisterPaymentRoutes(v1, a)

	return nil
}

// statusFor maps client errors onto bridge statuses: precondition failures
// are the caller's fault, upstream protocol breakage is a bad gateway.
func statusFor(err error) int {
	switch {
	case errors.Is(err, venmo.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, venmo.ErrProtocolViolation), errors.Is(err, venmo.ErrUnexpectedStatus):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
