package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"sunduq/internal/core"
)

func TestAddMember(t *testing.T) {
	f := newTestFund(t)
	ctx := context.Background()

	m, err := f.AddMember(ctx, " Fatima Hassan ", "51239876", core.Money{Cents: 2000}, core.NewDate(2024, 2, 1))
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if m.Name != "Fatima Hassan" {
		t.Errorf("name not trimmed: %q", m.Name)
	}
	if m.Status != core.StatusActive || m.Role != core.RoleMember {
		t.Errorf("new member status/role = %s/%s", m.Status, m.Role)
	}
	if len(f.Members()) != 4 {
		t.Errorf("roster size = %d, want 4", len(f.Members()))
	}
}

func TestAddMember_DefaultsJoinDateToToday(t *testing.T) {
	f := newTestFund(t)
	m, err := f.AddMember(context.Background(), "Omar Khalid", "50001122", core.Money{Cents: 500}, core.Date{})
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if m.JoinDate.IsZero() {
		t.Fatal("join date left zero")
	}
	if got := core.TotalContribution(m, time.Now()); got.Cents != 500 {
		t.Errorf("first month contribution = %d, want 500", got.Cents)
	}
}

func TestAddMember_Invalid(t *testing.T) {
	f := newTestFund(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		member  string
		phone   string
		wantErr error
	}{
		{"blank name", "  ", "51234567", core.ErrEmptyName},
		{"short phone", "Valid Name", "1234567", core.ErrInvalidPhone},
		{"non-digit phone", "Valid Name", "5123456a", core.ErrInvalidPhone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.AddMember(ctx, tt.member, tt.phone, core.Money{Cents: 100}, core.NewDate(2024, 1, 1))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if len(f.Members()) != 3 {
		t.Errorf("roster grew on rejected input")
	}
}

func TestEditMember(t *testing.T) {
	f := newTestFund(t)
	pledge := core.Money{Cents: 3000}
	phone := "59998877"

	m, ok, err := f.EditMember(context.Background(), 2, MemberUpdate{MonthlyPledge: &pledge, Phone: &phone})
	if err != nil || !ok {
		t.Fatalf("EditMember() = ok %v, err %v", ok, err)
	}
	if m.MonthlyPledge.Cents != 3000 || m.Phone != "59998877" {
		t.Errorf("edited member = %+v", m)
	}
	if m.Name != "Ahmad Mohammed" {
		t.Errorf("untouched name = %q", m.Name)
	}

	_, ok, err = f.EditMember(context.Background(), 42, MemberUpdate{Phone: &phone})
	if err != nil || ok {
		t.Errorf("edit of missing id = ok %v, err %v", ok, err)
	}
}

func TestToggleMemberStatus(t *testing.T) {
	f := newTestFund(t)
	ctx := context.Background()

	m, ok, err := f.ToggleMemberStatus(ctx, 2)
	if err != nil || !ok {
		t.Fatalf("ToggleMemberStatus() = ok %v, err %v", ok, err)
	}
	if m.Status != core.StatusInactive {
		t.Errorf("status after toggle = %s", m.Status)
	}
	m, _, _ = f.ToggleMemberStatus(ctx, 2)
	if m.Status != core.StatusActive {
		t.Errorf("status after second toggle = %s", m.Status)
	}
}

func TestUpdateAdminProfile(t *testing.T) {
	f := newTestFund(t)

	m, ok, err := f.UpdateAdminProfile(context.Background(), 1, "Treasurer", "treasurer", "")
	if err != nil || !ok {
		t.Fatalf("UpdateAdminProfile() = ok %v, err %v", ok, err)
	}
	if m.Name != "Treasurer" || m.Username != "treasurer" {
		t.Errorf("profile = %+v", m)
	}
	if m.Password != "admin" {
		t.Error("blank password overwrote the stored one")
	}
}

func TestDeleteMember_KeepsTransactions(t *testing.T) {
	f := newTestFund(t)
	ctx := context.Background()

	if err := f.DeleteMember(ctx, 1); err != nil {
		t.Fatalf("DeleteMember() error = %v", err)
	}
	if _, ok := f.MemberByID(1); ok {
		t.Error("member still present after delete")
	}
	// the member's deposit survives with a dangling reference
	tr, ok := f.TransactionByID(1)
	if !ok || tr.MemberID != 1 {
		t.Errorf("transaction after member delete = %+v, ok %v", tr, ok)
	}
	if got := f.Balance(); got.Cents != 2000 {
		t.Errorf("balance changed on member delete: %d", got.Cents)
	}

	if err := f.DeleteMember(ctx, 42); err != nil {
		t.Errorf("delete of missing id error = %v", err)
	}
}
