package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sunduq/internal/core"
	"sunduq/internal/store"
)

// MemberUpdate carries the editable member fields. Nil means leave the
// field unchanged.
type MemberUpdate struct {
	Name          *string
	Phone         *string
	MonthlyPledge *core.Money
	JoinDate      *core.Date
}

// AddMember registers a new active member. A zero joinDate defaults to
// today, which credits the first month's contribution immediately.
func (f *Fund) AddMember(ctx context.Context, name, phone string, pledge core.Money, joinDate core.Date) (core.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if joinDate.IsZero() {
		joinDate = core.DateOf(time.Now())
	}
	m := core.Member{
		ID:            f.nextID,
		Name:          strings.TrimSpace(name),
		Phone:         strings.TrimSpace(phone),
		JoinDate:      joinDate,
		Status:        core.StatusActive,
		Role:          core.RoleMember,
		MonthlyPledge: pledge,
	}
	if err := m.Validate(); err != nil {
		return core.Member{}, err
	}

	f.st.Members = append(f.st.Members, m)
	if err := store.SaveMembers(ctx, f.kv, f.st.Members); err != nil {
		f.st.Members = f.st.Members[:len(f.st.Members)-1]
		return core.Member{}, fmt.Errorf("save members: %w", err)
	}
	f.assignID()
	return m, nil
}

// EditMember applies upd to the member with the given id. Editing a
// missing id is a silent no-op: ok is false and err is nil.
func (f *Fund) EditMember(ctx context.Context, id int64, upd MemberUpdate) (core.Member, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.memberIndex(id)
	if idx < 0 {
		return core.Member{}, false, nil
	}

	m := f.st.Members[idx]
	if upd.Name != nil {
		m.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Phone != nil {
		m.Phone = strings.TrimSpace(*upd.Phone)
	}
	if upd.MonthlyPledge != nil {
		m.MonthlyPledge = *upd.MonthlyPledge
	}
	if upd.JoinDate != nil {
		m.JoinDate = *upd.JoinDate
	}
	if err := m.Validate(); err != nil {
		return core.Member{}, false, err
	}

	return f.storeMember(ctx, idx, m)
}

// ToggleMemberStatus flips the member between active and inactive.
// Inactive members keep their history but stop accruing contributions
// and are skipped by the monthly deduction.
func (f *Fund) ToggleMemberStatus(ctx context.Context, id int64) (core.Member, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.memberIndex(id)
	if idx < 0 {
		return core.Member{}, false, nil
	}

	m := f.st.Members[idx]
	if m.Status == core.StatusActive {
		m.Status = core.StatusInactive
	} else {
		m.Status = core.StatusActive
	}
	return f.storeMember(ctx, idx, m)
}

// UpdateAdminProfile changes the administrator's display name and
// credentials. Blank username or password leave the stored value as is.
func (f *Fund) UpdateAdminProfile(ctx context.Context, id int64, name, username, password string) (core.Member, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.memberIndex(id)
	if idx < 0 {
		return core.Member{}, false, nil
	}

	m := f.st.Members[idx]
	if name = strings.TrimSpace(name); name != "" {
		m.Name = name
	}
	if username = strings.TrimSpace(username); username != "" {
		m.Username = username
	}
	if password != "" {
		m.Password = password
	}
	if err := m.Validate(); err != nil {
		return core.Member{}, false, err
	}
	return f.storeMember(ctx, idx, m)
}

// DeleteMember removes the member. Their past transactions stay in the
// ledger with a dangling member reference. Missing ids are not an error.
func (f *Fund) DeleteMember(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.memberIndex(id)
	if idx < 0 {
		return nil
	}

	next := make([]core.Member, 0, len(f.st.Members)-1)
	next = append(next, f.st.Members[:idx]...)
	next = append(next, f.st.Members[idx+1:]...)
	if err := store.SaveMembers(ctx, f.kv, next); err != nil {
		return fmt.Errorf("save members: %w", err)
	}
	f.st.Members = next
	return nil
}

// Members returns a copy of the roster.
func (f *Fund) Members() []core.Member {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]core.Member, len(f.st.Members))
	copy(out, f.st.Members)
	return out
}

// MemberByID returns the member with the given id.
func (f *Fund) MemberByID(id int64) (core.Member, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if idx := f.memberIndex(id); idx >= 0 {
		return f.st.Members[idx], true
	}
	return core.Member{}, false
}

// memberIndex finds id in the roster. Caller must hold mu.
func (f *Fund) memberIndex(id int64) int {
	for i, m := range f.st.Members {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// storeMember persists a single-member change at idx, rolling back the
// in-memory state on failure. Caller must hold mu.
func (f *Fund) storeMember(ctx context.Context, idx int, m core.Member) (core.Member, bool, error) {
	prev := f.st.Members[idx]
	f.st.Members[idx] = m
	if err := store.SaveMembers(ctx, f.kv, f.st.Members); err != nil {
		f.st.Members[idx] = prev
		return core.Member{}, false, fmt.Errorf("save members: %w", err)
	}
	return m, true, nil
}
