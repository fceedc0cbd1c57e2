package sheets

import (
	"context"

	"sunduq/internal/core"
)

// Ports for outbound ledger export adapters.
type (
	// LedgerWriter appends a ledger entry to the export target. Appending
	// an id that is already present replaces the existing row.
	LedgerWriter interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	// LedgerRemover removes a previously exported ledger entry. Removing
	// an id that was never exported is not an error.
	LedgerRemover interface {
		Remove(ctx context.Context, id int64) error
	}
)
