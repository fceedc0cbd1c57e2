package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"sunduq/internal/core"
)

// Persisted state layout. Every key holds the full value for its concern;
// there is no partial update.
const (
	KeyMembers         = "users"
	KeyProjects        = "projects"
	KeyTransactions    = "transactions"
	KeyAnnouncement    = "announcement"
	KeyStartingBalance = "starting_balance"
	KeyShowStats       = "show_stats"
	KeyShowCompleted   = "show_completed"
	KeyTheme           = "theme"
	KeyLastDeduction   = "last_deduction"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// Settings are the cross-cutting configuration values, loaded at startup
// and written back on every change. Theme "system" is stored as-is; the
// client resolves it against the host color-scheme preference.
type Settings struct {
	StartingBalance core.Money `json:"startingBalance"`
	Announcement    string     `json:"announcement"`
	ShowStats       bool       `json:"showStats"`
	ShowCompleted   bool       `json:"showCompleted"`
	Theme           Theme      `json:"theme"`
	// LastDeduction records the last calendar period ("2006-01") the
	// monthly deduction ran for; empty if it never ran.
	LastDeduction string `json:"lastDeduction,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		ShowStats:     true,
		ShowCompleted: true,
		Theme:         ThemeSystem,
	}
}

// State is the full in-memory snapshot read at startup.
type State struct {
	Members      []core.Member
	Projects     []core.Project
	Transactions []core.Transaction
	Settings     Settings
}

// Load reads the whole state from kv. Missing or unreadable collections
// fall back to the seed dataset rather than failing, so a corrupted value
// never bricks the fund.
func Load(ctx context.Context, kv KV) (*State, error) {
	st := &State{Settings: DefaultSettings()}

	if err := loadJSON(ctx, kv, KeyMembers, &st.Members, core.SeedMembers); err != nil {
		return nil, err
	}
	if err := loadJSON(ctx, kv, KeyProjects, &st.Projects, core.SeedProjects); err != nil {
		return nil, err
	}
	if err := loadJSON(ctx, kv, KeyTransactions, &st.Transactions, core.SeedTransactions); err != nil {
		return nil, err
	}

	if v, ok, err := kv.Get(ctx, KeyAnnouncement); err != nil {
		return nil, fmt.Errorf("load announcement: %w", err)
	} else if ok {
		st.Settings.Announcement = v
	}

	if v, ok, err := kv.Get(ctx, KeyStartingBalance); err != nil {
		return nil, fmt.Errorf("load starting balance: %w", err)
	} else if ok {
		cents, perr := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if perr != nil {
			slog.Warn("Unreadable starting balance, using 0", "value", v, "error", perr)
		} else {
			st.Settings.StartingBalance = core.Money{Cents: cents}
		}
	}

	loadBool(ctx, kv, KeyShowStats, &st.Settings.ShowStats)
	loadBool(ctx, kv, KeyShowCompleted, &st.Settings.ShowCompleted)

	if v, ok, err := kv.Get(ctx, KeyTheme); err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	} else if ok {
		if theme := Theme(v); theme.Valid() {
			st.Settings.Theme = theme
		} else {
			slog.Warn("Unknown theme in store, keeping default", "value", v)
		}
	}

	if v, ok, err := kv.Get(ctx, KeyLastDeduction); err != nil {
		return nil, fmt.Errorf("load last deduction: %w", err)
	} else if ok {
		st.Settings.LastDeduction = v
	}

	return st, nil
}

// LoadTransactions reads only the ledger collection. The export worker
// calls this per message so it sees the server's latest write rather than
// its own boot-time snapshot.
func LoadTransactions(ctx context.Context, kv KV) ([]core.Transaction, error) {
	var transactions []core.Transaction
	if err := loadJSON(ctx, kv, KeyTransactions, &transactions, core.SeedTransactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func loadJSON[T any](ctx context.Context, kv KV, key string, dst *[]T, seed func() []T) error {
	v, ok, err := kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		*dst = seed()
		return nil
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		slog.Warn("Unreadable persisted collection, falling back to seed data",
			"key", key, "error", err)
		*dst = seed()
	}
	return nil
}

func loadBool(ctx context.Context, kv KV, key string, dst *bool) {
	v, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return
	}
	var b bool
	if jerr := json.Unmarshal([]byte(v), &b); jerr != nil {
		slog.Warn("Unreadable boolean setting, keeping default", "key", key, "error", jerr)
		return
	}
	*dst = b
}

func SaveMembers(ctx context.Context, kv KV, members []core.Member) error {
	return saveJSON(ctx, kv, KeyMembers, members)
}

func SaveProjects(ctx context.Context, kv KV, projects []core.Project) error {
	return saveJSON(ctx, kv, KeyProjects, projects)
}

func SaveTransactions(ctx context.Context, kv KV, transactions []core.Transaction) error {
	return saveJSON(ctx, kv, KeyTransactions, transactions)
}

// SaveSettings writes every settings key; values are small and stored
// under separate keys so clients can fetch one without the rest.
func SaveSettings(ctx context.Context, kv KV, s Settings) error {
	if err := kv.Set(ctx, KeyAnnouncement, s.Announcement); err != nil {
		return err
	}
	if err := kv.Set(ctx, KeyStartingBalance, strconv.FormatInt(s.StartingBalance.Cents, 10)); err != nil {
		return err
	}
	if err := kv.Set(ctx, KeyShowStats, strconv.FormatBool(s.ShowStats)); err != nil {
		return err
	}
	if err := kv.Set(ctx, KeyShowCompleted, strconv.FormatBool(s.ShowCompleted)); err != nil {
		return err
	}
	if err := kv.Set(ctx, KeyTheme, string(s.Theme)); err != nil {
		return err
	}
	return kv.Set(ctx, KeyLastDeduction, s.LastDeduction)
}

func saveJSON[T any](ctx context.Context, kv KV, key string, v []T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(data))
}
