package main

import (
	"context"
	"net/http"
	"os"
	"time"

	sunduqamqp "sunduq/internal/amqp"
	"sunduq/internal/cli"
	apphttp "sunduq/internal/http"
	"sunduq/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	kv := cli.OpenStore(logger, cfg)

	// The export queue is optional; without it all writes stay local.
	var publisher services.LedgerPublisher
	var amqpClient *sunduqamqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = sunduqamqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("Ledger export queue connected", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("Ledger export disabled, no AMQP_URL provided")
	}

	fund, err := services.NewFund(context.Background(), kv, publisher)
	if err != nil {
		logger.Error("Failed to load fund state", "error", err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, fund)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting sunduq server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
