// Package services implements the fund's mutation operations: the ledger,
// the member roster, the project lifecycle, and the configuration state.
// Every mutation updates the in-memory state and writes the affected
// collection back through the key-value store before returning.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"sunduq/internal/core"
	"sunduq/internal/store"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrAlreadyVoted    = errors.New("member already voted for this project")
	// ErrDeductionAlreadyRan guards against collecting the same month twice;
	// the caller must pass an explicit confirmation to override.
	ErrDeductionAlreadyRan = errors.New("monthly deduction already ran for this period")
)

// LedgerPublisher publishes ledger change events for the async export
// pipeline. Implementations must be safe for concurrent use.
type LedgerPublisher interface {
	PublishLedgerSync(ctx context.Context, id int64) error
	PublishLedgerDelete(ctx context.Context, id int64) error
}

// Fund owns the fund state. All operations serialize on a single mutex:
// the domain is a small single-family dataset and mutations are rare.
type Fund struct {
	mu        sync.Mutex
	kv        store.KV
	st        *store.State
	nextID    int64
	publisher LedgerPublisher
}

// NewFund loads the persisted state (seeding on first run) and returns a
// ready fund. publisher may be nil for pure local mode.
func NewFund(ctx context.Context, kv store.KV, publisher LedgerPublisher) (*Fund, error) {
	st, err := store.Load(ctx, kv)
	if err != nil {
		return nil, fmt.Errorf("load fund state: %w", err)
	}

	f := &Fund{kv: kv, st: st, publisher: publisher, nextID: 1}
	for _, m := range st.Members {
		if m.ID >= f.nextID {
			f.nextID = m.ID + 1
		}
	}
	for _, p := range st.Projects {
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
	}
	for _, t := range st.Transactions {
		if t.ID >= f.nextID {
			f.nextID = t.ID + 1
		}
	}
	return f, nil
}

// assignID hands out the next unique id. Caller must hold mu.
func (f *Fund) assignID() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *Fund) publishSync(ctx context.Context, id int64) {
	if f.publisher == nil {
		return
	}
	if err := f.publisher.PublishLedgerSync(ctx, id); err != nil {
		// Export is best effort; the transaction is already saved locally.
		slog.ErrorContext(ctx, "Failed to publish ledger sync message", "id", id, "error", err)
	}
}

func (f *Fund) publishDelete(ctx context.Context, id int64) {
	if f.publisher == nil {
		return
	}
	if err := f.publisher.PublishLedgerDelete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger delete message", "id", id, "error", err)
	}
}

// Overview is the dashboard snapshot: the derived balance plus entity
// counts, all recomputed from current state.
type Overview struct {
	Balance           core.Money `json:"balance"`
	TotalDeposits     core.Money `json:"totalDeposits"`
	TotalExpenses     core.Money `json:"totalExpenses"`
	TotalMembers      int        `json:"totalMembers"`
	ActiveMembers     int        `json:"activeMembers"`
	VotingProjects    int        `json:"votingProjects"`
	ActiveProjects    int        `json:"activeProjects"`
	CompletedProjects int        `json:"completedProjects"`
	Announcement      string     `json:"announcement,omitempty"`
	ShowStats         bool       `json:"showStats"`
}

func (f *Fund) Overview() Overview {
	f.mu.Lock()
	defer f.mu.Unlock()

	ov := Overview{
		Balance:      core.Balance(f.st.Transactions, f.st.Settings.StartingBalance),
		TotalMembers: len(f.st.Members),
		Announcement: f.st.Settings.Announcement,
		ShowStats:    f.st.Settings.ShowStats,
	}
	for _, t := range f.st.Transactions {
		switch t.Type {
		case core.Deposit:
			ov.TotalDeposits.Cents += t.Amount.Cents
		case core.Expense:
			ov.TotalExpenses.Cents += t.Amount.Cents
		}
	}
	for _, m := range f.st.Members {
		if m.Status == core.StatusActive {
			ov.ActiveMembers++
		}
	}
	for _, p := range f.st.Projects {
		switch p.Status {
		case core.ProjectVoting:
			ov.VotingProjects++
		case core.ProjectActive:
			ov.ActiveProjects++
		case core.ProjectCompleted:
			ov.CompletedProjects++
		}
	}
	return ov
}
