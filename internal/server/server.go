package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	venmo "github.com/venmo-unofficial/venmo-go"
	"github.com/venmo-unofficial/venmo-go/internal/config"
	"github.com/venmo-unofficial/venmo-go/internal/routes"
)

// Server wraps the Fiber application and the shared client.
type Server struct {
	app    *fiber.App
	cfg    config.Config
	client *venmo.Client
}

// New instantiates the bridge server and delegates route wiring to
// routes.Setup.
func New(cfg config.Config, client *venmo.Client, logger *slog.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
	})

	if err := routes.Setup(app, routes.Deps{Cfg: cfg, Client: client, Logger: logger}); err != nil {
		return nil, err
	}

	return &Server{app: app, cfg: cfg, client: client}, nil
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Address())
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
