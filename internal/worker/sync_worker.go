// Package worker moves ledger changes from the local store to the
// configured export target, driven by queue messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"sunduq/internal/amqp"
	"sunduq/internal/core"
	"sunduq/internal/sheets"
)

// TransactionSource yields the current ledger entry for an id. Lookups
// take a context because they hit the shared store on every call.
type TransactionSource interface {
	TransactionByID(ctx context.Context, id int64) (core.Transaction, bool, error)
}

// SyncWorker applies ledger sync messages against the export target.
type SyncWorker struct {
	source  TransactionSource
	writer  sheets.LedgerWriter
	remover sheets.LedgerRemover
}

func NewSyncWorker(source TransactionSource, writer sheets.LedgerWriter, remover sheets.LedgerRemover) *SyncWorker {
	return &SyncWorker{
		source:  source,
		writer:  writer,
		remover: remover,
	}
}

// HandleMessage processes one queue message. Upserts read the current
// transaction from the store, so stale messages still export the latest
// state; a transaction deleted in the meantime is removed instead.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.LedgerSyncMessage) error {
	switch msg.Action {
	case amqp.ActionUpsert:
		return w.handleUpsert(ctx, msg.ID)
	case amqp.ActionDelete:
		return w.handleDelete(ctx, msg.ID)
	default:
		// Unknown actions are dropped, not requeued.
		slog.WarnContext(ctx, "Ignoring message with unknown action",
			"id", msg.ID,
			"action", msg.Action)
		return nil
	}
}

func (w *SyncWorker) handleUpsert(ctx context.Context, id int64) error {
	t, ok, err := w.source.TransactionByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load transaction %d: %w", id, err)
	}
	if !ok {
		slog.InfoContext(ctx, "Transaction gone before export, removing instead", "id", id)
		return w.handleDelete(ctx, id)
	}

	ref, err := w.writer.Append(ctx, t)
	if err != nil {
		return fmt.Errorf("append to export target: %w", err)
	}

	slog.InfoContext(ctx, "Exported ledger entry",
		"id", id,
		"ref", ref,
		"type", t.Type,
		"amount_cents", t.Amount.Cents)
	return nil
}

func (w *SyncWorker) handleDelete(ctx context.Context, id int64) error {
	if w.remover == nil {
		slog.WarnContext(ctx, "No remover configured, skipping export removal", "id", id)
		return nil
	}
	if err := w.remover.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove from export target: %w", err)
	}
	slog.InfoContext(ctx, "Removed exported ledger entry", "id", id)
	return nil
}

// Resync pushes the whole ledger to the export target. Run at startup to
// recover entries whose messages were lost while the worker was down.
func (w *SyncWorker) Resync(ctx context.Context, transactions []core.Transaction) error {
	var errCount int
	for _, t := range transactions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := w.writer.Append(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to export ledger entry during resync",
				"id", t.ID,
				"error", err)
			errCount++
		}
	}
	slog.InfoContext(ctx, "Resync completed",
		"total", len(transactions),
		"errors", errCount)
	if errCount > 0 {
		return fmt.Errorf("resync finished with %d errors", errCount)
	}
	return nil
}
