// Command bridge exposes the client over a local HTTP API so non-Go tooling
// can drive a session: POST /api/v1/login once, then call the read and
// payment endpoints.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	venmo "github.com/venmo-unofficial/venmo-go"
	"github.com/venmo-unofficial/venmo-go/internal/config"
	"github.com/venmo-unofficial/venmo-go/internal/logging"
	"github.com/venmo-unofficial/venmo-go/internal/server"
)

func main() {
	// A missing .env is fine; the environment may carry everything already.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	client, err := venmo.New(venmo.Credentials{
		Username:          cfg.Username,
		Password:          cfg.Password,
		BankAccountNumber: cfg.BankAccount,
	},
		venmo.WithLogger(logger),
		venmo.WithTimeout(cfg.RequestTimeout),
		venmo.WithProxy(cfg.ProxyURL),
	)
	if err != nil {
		logger.Error("build client", "error", err)
		os.Exit(1)
	}

	srv, err := server.New(cfg, client, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
