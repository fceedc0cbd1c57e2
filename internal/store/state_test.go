package store

import (
	"context"
	"testing"

	"sunduq/internal/core"
)

func TestLoad_EmptyStoreUsesSeedData(t *testing.T) {
	ctx := context.Background()
	st, err := Load(ctx, NewMemoryStore())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(st.Members) != 3 {
		t.Errorf("seed members = %d, want 3", len(st.Members))
	}
	if len(st.Projects) != 2 {
		t.Errorf("seed projects = %d, want 2", len(st.Projects))
	}
	if len(st.Transactions) != 2 {
		t.Errorf("seed transactions = %d, want 2", len(st.Transactions))
	}
	if st.Settings.Theme != ThemeSystem {
		t.Errorf("default theme = %q, want system", st.Settings.Theme)
	}
	if !st.Settings.ShowStats || !st.Settings.ShowCompleted {
		t.Error("dashboard toggles should default to true")
	}
}

func TestLoad_MalformedJSONFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	if err := kv.Set(ctx, KeyMembers, "{not json"); err != nil {
		t.Fatal(err)
	}
	if err := kv.Set(ctx, KeyTheme, "sepia"); err != nil {
		t.Fatal(err)
	}

	st, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(st.Members) != 3 {
		t.Errorf("members after corrupt load = %d, want seed 3", len(st.Members))
	}
	if st.Settings.Theme != ThemeSystem {
		t.Errorf("invalid theme should keep default, got %q", st.Settings.Theme)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	members := []core.Member{{
		ID:            7,
		Name:          "Noor",
		Phone:         "51234567",
		JoinDate:      core.NewDate(2024, 3, 1),
		Status:        core.StatusActive,
		Role:          core.RoleMember,
		MonthlyPledge: core.Money{Cents: 1500},
	}}
	if err := SaveMembers(ctx, kv, members); err != nil {
		t.Fatalf("SaveMembers: %v", err)
	}

	settings := Settings{
		StartingBalance: core.Money{Cents: 10000},
		Announcement:    "Eid gathering on Friday",
		ShowStats:       false,
		ShowCompleted:   true,
		Theme:           ThemeDark,
		LastDeduction:   "2024-03",
	}
	if err := SaveSettings(ctx, kv, settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	st, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(st.Members) != 1 || st.Members[0].Name != "Noor" {
		t.Errorf("members did not round trip: %+v", st.Members)
	}
	if st.Members[0].JoinDate.String() != "2024-03-01" {
		t.Errorf("join date = %q, want 2024-03-01", st.Members[0].JoinDate.String())
	}
	if st.Settings != settings {
		t.Errorf("settings = %+v, want %+v", st.Settings, settings)
	}
}

func TestSQLiteStore(t *testing.T) {
	dbPath := t.TempDir() + "/state.db"
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := s.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "theme", "light"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	v, ok, err := s.Get(ctx, "theme")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v", ok, err)
	}
	if v != "light" {
		t.Errorf("Get = %q, want light", v)
	}
}
