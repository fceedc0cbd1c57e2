package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"sunduq/internal/core"
	"sunduq/internal/store"
)

// TransactionUpdate carries the editable transaction fields. Nil means
// leave the field unchanged. Type and member are fixed at creation.
type TransactionUpdate struct {
	Description *string
	Amount      *core.Money
	Date        *time.Time
	ProjectID   *int64
}

// RecordTransaction appends a validated transaction to the ledger.
// memberID and projectID are optional weak references; zero means absent.
func (f *Fund) RecordTransaction(ctx context.Context, typ core.TransactionType, amount core.Money, description string, date time.Time, memberID, projectID int64) (core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if date.IsZero() {
		date = time.Now()
	}
	t := core.Transaction{
		ID:          f.nextID,
		Type:        typ,
		Amount:      amount,
		Date:        date,
		Description: strings.TrimSpace(description),
		MemberID:    memberID,
		ProjectID:   projectID,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	f.st.Transactions = append(f.st.Transactions, t)
	if err := store.SaveTransactions(ctx, f.kv, f.st.Transactions); err != nil {
		f.st.Transactions = f.st.Transactions[:len(f.st.Transactions)-1]
		return core.Transaction{}, fmt.Errorf("save transactions: %w", err)
	}
	f.assignID()

	f.publishSync(ctx, t.ID)
	return t, nil
}

// EditTransaction applies upd to the transaction with the given id.
// Editing a missing id is a silent no-op: ok is false and err is nil.
func (f *Fund) EditTransaction(ctx context.Context, id int64, upd TransactionUpdate) (core.Transaction, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := -1
	for i, t := range f.st.Transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Transaction{}, false, nil
	}

	t := f.st.Transactions[idx]
	if upd.Description != nil {
		t.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Amount != nil {
		t.Amount = *upd.Amount
	}
	if upd.Date != nil {
		t.Date = *upd.Date
	}
	if upd.ProjectID != nil {
		t.ProjectID = *upd.ProjectID
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, false, err
	}

	prev := f.st.Transactions[idx]
	f.st.Transactions[idx] = t
	if err := store.SaveTransactions(ctx, f.kv, f.st.Transactions); err != nil {
		f.st.Transactions[idx] = prev
		return core.Transaction{}, false, fmt.Errorf("save transactions: %w", err)
	}

	f.publishSync(ctx, t.ID)
	return t, true, nil
}

// DeleteTransaction removes the transaction with the given id. Deleting
// a missing id is not an error.
func (f *Fund) DeleteTransaction(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := -1
	for i, t := range f.st.Transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	next := make([]core.Transaction, 0, len(f.st.Transactions)-1)
	next = append(next, f.st.Transactions[:idx]...)
	next = append(next, f.st.Transactions[idx+1:]...)
	if err := store.SaveTransactions(ctx, f.kv, next); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	f.st.Transactions = next

	f.publishDelete(ctx, id)
	return nil
}

// Balance returns the current derived balance.
func (f *Fund) Balance() core.Money {
	f.mu.Lock()
	defer f.mu.Unlock()
	return core.Balance(f.st.Transactions, f.st.Settings.StartingBalance)
}

// Transactions lists the ledger most recent first by insertion order,
// so a backdated entry still lists where it was recorded. typ filters by
// transaction type ("" means all) and search matches the description
// case-insensitively.
func (f *Fund) Transactions(typ core.TransactionType, search string) []core.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]core.Transaction, 0, len(f.st.Transactions))
	for _, t := range f.st.Transactions {
		if typ != "" && t.Type != typ {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	return out
}

// TransactionByID returns the transaction with the given id.
func (f *Fund) TransactionByID(id int64) (core.Transaction, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.st.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// RunMonthlyDeduction records one deposit per active member for their
// monthly pledge. The run is keyed on now's year and month: a second run
// for the same period fails with ErrDeductionAlreadyRan unless confirmed
// is true. Members with a zero pledge are skipped.
func (f *Fund) RunMonthlyDeduction(ctx context.Context, now time.Time, confirmed bool) ([]core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	period := now.Format("2006-01")
	if f.st.Settings.LastDeduction == period && !confirmed {
		return nil, ErrDeductionAlreadyRan
	}

	var created []core.Transaction
	next := f.st.Transactions
	id := f.nextID
	for _, m := range f.st.Members {
		if m.Status != core.StatusActive || m.MonthlyPledge.Cents <= 0 {
			continue
		}
		t := core.Transaction{
			ID:          id,
			Type:        core.Deposit,
			Amount:      m.MonthlyPledge,
			Date:        now,
			Description: core.DeductionDescription,
			MemberID:    m.ID,
		}
		id++
		created = append(created, t)
		next = append(next, t)
	}

	if err := store.SaveTransactions(ctx, f.kv, next); err != nil {
		return nil, fmt.Errorf("save transactions: %w", err)
	}
	prevSettings := f.st.Settings
	f.st.Settings.LastDeduction = period
	if err := store.SaveSettings(ctx, f.kv, f.st.Settings); err != nil {
		f.st.Settings = prevSettings
		return nil, fmt.Errorf("save settings: %w", err)
	}
	f.st.Transactions = next
	f.nextID = id

	for _, t := range created {
		f.publishSync(ctx, t.ID)
	}
	return created, nil
}
