package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	sunduqamqp "sunduq/internal/amqp"
	"sunduq/internal/cli"
	"sunduq/internal/sheets"
	gsheet "sunduq/internal/sheets/google"
	mem "sunduq/internal/sheets/memory"
	"sunduq/internal/store"
	"sunduq/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	logger.Info("Starting sunduq-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	kv := cli.OpenStore(logger, cfg)

	// The worker reads the same store the server writes; a queue message
	// only carries the id and the current entry is fetched per message.
	source := worker.NewStoreSource(kv)

	var writer sheets.LedgerWriter
	var remover sheets.LedgerRemover
	switch cfg.ExportBackend {
	case "google":
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		writer, remover = client, client
		logger.Info("Google Sheets export target initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	default:
		store := mem.New()
		writer, remover = store, store
		logger.Info("Using in-memory export target, exports will not survive restarts")
	}

	amqpClient, err := sunduqamqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(source, writer, remover)

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)
	g, ctx := errgroup.WithContext(shutdownCtx)

	if cfg.ResyncOnStart {
		g.Go(func() error {
			resyncCtx, cancel := context.WithTimeout(ctx, cfg.ResyncTimeout)
			defer cancel()
			transactions, err := store.LoadTransactions(resyncCtx, kv)
			if err != nil {
				logger.Error("Startup resync failed to load ledger", "error", err)
				return nil
			}
			if err := syncWorker.Resync(resyncCtx, transactions); err != nil {
				// resync failures are recoverable, messages still flow
				logger.Error("Startup resync failed", "error", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		return amqpClient.ConsumeLedgerSync(ctx, func(msg *sunduqamqp.LedgerSyncMessage) error {
			return syncWorker.HandleMessage(ctx, msg)
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(shutdownCtx, done)
	logger.Info("Worker stopped gracefully")
}
