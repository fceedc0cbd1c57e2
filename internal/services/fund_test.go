package services

import (
	"context"
	"testing"

	"sunduq/internal/core"
	"sunduq/internal/store"
)

func newTestFund(t *testing.T) *Fund {
	t.Helper()
	f, err := NewFund(context.Background(), store.NewMemoryStore(), nil)
	if err != nil {
		t.Fatalf("NewFund() error = %v", err)
	}
	return f
}

func TestNewFund_AssignsIDsAfterSeed(t *testing.T) {
	f := newTestFund(t)
	ctx := context.Background()

	m, err := f.AddMember(ctx, "New Member", "51112233", core.Money{Cents: 500}, core.NewDate(2024, 1, 1))
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if m.ID != 4 {
		t.Errorf("first assigned id = %d, want 4", m.ID)
	}

	p, err := f.AddProject(ctx, "School library", "Books for the local school", core.Money{Cents: 20000}, "", "")
	if err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}
	if p.ID != 5 {
		t.Errorf("second assigned id = %d, want 5", p.ID)
	}
}

func TestNewFund_ReloadSeesSavedState(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()

	f1, err := NewFund(ctx, kv, nil)
	if err != nil {
		t.Fatalf("NewFund() error = %v", err)
	}
	if _, err := f1.AddMember(ctx, "Persisted Member", "59990011", core.Money{Cents: 250}, core.NewDate(2024, 5, 1)); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	f2, err := NewFund(ctx, kv, nil)
	if err != nil {
		t.Fatalf("NewFund() reload error = %v", err)
	}
	members := f2.Members()
	if len(members) != 4 {
		t.Fatalf("reloaded roster has %d members, want 4", len(members))
	}
	if members[3].Name != "Persisted Member" {
		t.Errorf("reloaded member name = %q", members[3].Name)
	}

	m, err := f2.AddMember(ctx, "Another Member", "58887766", core.Money{Cents: 100}, core.NewDate(2024, 6, 1))
	if err != nil {
		t.Fatalf("AddMember() after reload error = %v", err)
	}
	if m.ID != 5 {
		t.Errorf("id after reload = %d, want 5", m.ID)
	}
}

func TestOverview(t *testing.T) {
	f := newTestFund(t)
	ctx := context.Background()

	ov := f.Overview()
	if ov.Balance.Cents != 2000 {
		t.Errorf("seed balance = %d, want 2000", ov.Balance.Cents)
	}
	if ov.TotalMembers != 3 || ov.ActiveMembers != 3 {
		t.Errorf("members = %d/%d active, want 3/3", ov.TotalMembers, ov.ActiveMembers)
	}
	if ov.VotingProjects != 1 || ov.ActiveProjects != 1 || ov.CompletedProjects != 0 {
		t.Errorf("project counts = %d/%d/%d", ov.VotingProjects, ov.ActiveProjects, ov.CompletedProjects)
	}

	if _, err := f.RecordTransaction(ctx, core.Expense, core.Money{Cents: 700}, "Charity drive", core.NewDate(2024, 1, 5).Time, 0, 0); err != nil {
		t.Fatalf("RecordTransaction() error = %v", err)
	}
	if _, _, err := f.ToggleMemberStatus(ctx, 3); err != nil {
		t.Fatalf("ToggleMemberStatus() error = %v", err)
	}

	ov = f.Overview()
	if ov.Balance.Cents != 1300 {
		t.Errorf("balance after expense = %d, want 1300", ov.Balance.Cents)
	}
	if ov.TotalDeposits.Cents != 2000 || ov.TotalExpenses.Cents != 700 {
		t.Errorf("totals = %d deposits / %d expenses", ov.TotalDeposits.Cents, ov.TotalExpenses.Cents)
	}
	if ov.ActiveMembers != 2 {
		t.Errorf("active members after toggle = %d, want 2", ov.ActiveMembers)
	}
}

func TestUpdateSettings(t *testing.T) {
	f := newTestFund(t)
	ctx := context.Background()

	balance := core.Money{Cents: 5000}
	announcement := "Meeting on Friday"
	hide := false
	theme := store.ThemeDark

	s, err := f.UpdateSettings(ctx, SettingsUpdate{
		StartingBalance: &balance,
		Announcement:    &announcement,
		ShowCompleted:   &hide,
		Theme:           &theme,
	})
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	if s.StartingBalance.Cents != 5000 || s.Announcement != announcement || s.ShowCompleted || s.Theme != store.ThemeDark {
		t.Errorf("settings = %+v", s)
	}
	if !s.ShowStats {
		t.Error("untouched ShowStats changed")
	}
	if got := f.Balance(); got.Cents != 7000 {
		t.Errorf("balance with starting balance = %d, want 7000", got.Cents)
	}

	bad := store.Theme("sepia")
	if _, err := f.UpdateSettings(ctx, SettingsUpdate{Theme: &bad}); err == nil {
		t.Error("UpdateSettings() accepted invalid theme")
	}
	if f.Settings().Theme != store.ThemeDark {
		t.Error("failed update modified settings")
	}
}
