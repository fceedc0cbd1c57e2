package services

import (
	"context"
	"fmt"

	"sunduq/internal/core"
	"sunduq/internal/store"
)

// SettingsUpdate carries the editable settings fields. Nil means leave
// the field unchanged.
type SettingsUpdate struct {
	StartingBalance *core.Money
	Announcement    *string
	ShowStats       *bool
	ShowCompleted   *bool
	Theme           *store.Theme
}

// Settings returns the current configuration state.
func (f *Fund) Settings() store.Settings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.Settings
}

// UpdateSettings applies upd and persists the settings. Changing the
// starting balance shifts the derived balance immediately; an empty
// announcement clears the banner.
func (f *Fund) UpdateSettings(ctx context.Context, upd SettingsUpdate) (store.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.st.Settings
	if upd.StartingBalance != nil {
		s.StartingBalance = *upd.StartingBalance
	}
	if upd.Announcement != nil {
		s.Announcement = *upd.Announcement
	}
	if upd.ShowStats != nil {
		s.ShowStats = *upd.ShowStats
	}
	if upd.ShowCompleted != nil {
		s.ShowCompleted = *upd.ShowCompleted
	}
	if upd.Theme != nil {
		if !upd.Theme.Valid() {
			return store.Settings{}, fmt.Errorf("invalid theme %q", *upd.Theme)
		}
		s.Theme = *upd.Theme
	}

	if err := store.SaveSettings(ctx, f.kv, s); err != nil {
		return store.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	f.st.Settings = s
	return s, nil
}
