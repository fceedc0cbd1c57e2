package worker

import (
	"context"
	"testing"
	"time"

	"sunduq/internal/amqp"
	"sunduq/internal/core"
	"sunduq/internal/services"
	"sunduq/internal/sheets/memory"
	"sunduq/internal/store"
)

type staticSource map[int64]core.Transaction

func (s staticSource) TransactionByID(_ context.Context, id int64) (core.Transaction, bool, error) {
	t, ok := s[id]
	return t, ok, nil
}

func entry(id int64, desc string, cents int64) core.Transaction {
	return core.Transaction{
		ID:          id,
		Type:        core.Deposit,
		Amount:      core.Money{Cents: cents},
		Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Description: desc,
	}
}

func TestHandleMessage_Upsert(t *testing.T) {
	store := memory.New()
	source := staticSource{7: entry(7, "Well donation", 5000)}
	w := NewSyncWorker(source, store, store)

	msg := amqp.NewLedgerSyncMessage(7, amqp.ActionUpsert)
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}

	items := store.Items()
	if len(items) != 1 || items[0].Description != "Well donation" {
		t.Errorf("exported items = %+v", items)
	}

	// a second upsert for the same id replaces, not duplicates
	source[7] = entry(7, "Well donation (corrected)", 6000)
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage() second upsert error = %v", err)
	}
	items = store.Items()
	if len(items) != 1 || items[0].Amount.Cents != 6000 {
		t.Errorf("items after replace = %+v", items)
	}
}

func TestHandleMessage_UpsertForDeletedTransactionRemoves(t *testing.T) {
	store := memory.New()
	if _, err := store.Append(context.Background(), entry(7, "stale", 100)); err != nil {
		t.Fatal(err)
	}
	w := NewSyncWorker(staticSource{}, store, store)

	msg := amqp.NewLedgerSyncMessage(7, amqp.ActionUpsert)
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if len(store.Items()) != 0 {
		t.Error("entry for deleted transaction not removed")
	}
}

func TestHandleMessage_Delete(t *testing.T) {
	store := memory.New()
	if _, err := store.Append(context.Background(), entry(3, "to remove", 100)); err != nil {
		t.Fatal(err)
	}
	w := NewSyncWorker(staticSource{}, store, store)

	if err := w.HandleMessage(context.Background(), amqp.NewLedgerSyncMessage(3, amqp.ActionDelete)); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if len(store.Items()) != 0 {
		t.Error("entry not removed")
	}

	// no remover configured is a no-op, not an error
	w = NewSyncWorker(staticSource{}, store, nil)
	if err := w.HandleMessage(context.Background(), amqp.NewLedgerSyncMessage(3, amqp.ActionDelete)); err != nil {
		t.Errorf("HandleMessage() without remover error = %v", err)
	}
}

func TestHandleMessage_UnknownActionDropped(t *testing.T) {
	store := memory.New()
	w := NewSyncWorker(staticSource{}, store, store)
	if err := w.HandleMessage(context.Background(), amqp.NewLedgerSyncMessage(1, "rename")); err != nil {
		t.Errorf("unknown action error = %v", err)
	}
}

// The server and worker run as separate processes over one store, so the
// source must re-read the ledger per message rather than hold a snapshot
// from startup.
func TestStoreSource_SeesTransactionsRecordedAfterStartup(t *testing.T) {
	kv := store.NewMemoryStore()
	exp := memory.New()
	w := NewSyncWorker(NewStoreSource(kv), exp, exp)

	// another process records a transaction after the worker is up
	fund, err := services.NewFund(context.Background(), kv, nil)
	if err != nil {
		t.Fatalf("NewFund() error = %v", err)
	}
	tr, err := fund.RecordTransaction(context.Background(), core.Deposit, core.Money{Cents: 4200}, "Orchard fundraiser", time.Now(), 0, 0)
	if err != nil {
		t.Fatalf("RecordTransaction() error = %v", err)
	}

	msg := amqp.NewLedgerSyncMessage(tr.ID, amqp.ActionUpsert)
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}

	exported := false
	for _, item := range exp.Items() {
		if item.ID == tr.ID && item.Description == "Orchard fundraiser" {
			exported = true
		}
	}
	if !exported {
		t.Errorf("transaction %d not exported; export target holds %+v", tr.ID, exp.Items())
	}
}

func TestStoreSource_MissingID(t *testing.T) {
	kv := store.NewMemoryStore()
	if err := store.SaveTransactions(context.Background(), kv, nil); err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}
	_, ok, err := NewStoreSource(kv).TransactionByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("TransactionByID() error = %v", err)
	}
	if ok {
		t.Error("found a transaction in an empty ledger")
	}
}

func TestResync(t *testing.T) {
	store := memory.New()
	w := NewSyncWorker(staticSource{}, store, store)

	ledger := []core.Transaction{
		entry(1, "one", 100),
		entry(2, "two", 200),
	}
	if err := w.Resync(context.Background(), ledger); err != nil {
		t.Fatalf("Resync() error = %v", err)
	}
	if len(store.Items()) != 2 {
		t.Errorf("exported %d items, want 2", len(store.Items()))
	}
}
