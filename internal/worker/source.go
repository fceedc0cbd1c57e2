package worker

import (
	"context"

	"sunduq/internal/core"
	"sunduq/internal/store"
)

// StoreSource looks transactions up in the shared key-value store. Every
// lookup re-reads the ledger collection, so entries the server records
// after this process starts are still found.
type StoreSource struct {
	kv store.KV
}

func NewStoreSource(kv store.KV) *StoreSource {
	return &StoreSource{kv: kv}
}

func (s *StoreSource) TransactionByID(ctx context.Context, id int64) (core.Transaction, bool, error) {
	transactions, err := store.LoadTransactions(ctx, s.kv)
	if err != nil {
		return core.Transaction{}, false, err
	}
	for _, t := range transactions {
		if t.ID == id {
			return t, true, nil
		}
	}
	return core.Transaction{}, false, nil
}
