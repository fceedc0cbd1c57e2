package services

import (
	"context"
	"errors"
	"testing"

	"sunduq/internal/core"
)

func TestAddProject(t *testing.T) {
	f := newTestFund(t)

	p, err := f.AddProject(context.Background(), "Food bank", "Stock the neighborhood food bank", core.Money{Cents: 30000}, "", "")
	if err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}
	if p.Status != core.ProjectVoting {
		t.Errorf("default status = %s, want voting", p.Status)
	}
	if p.Votes != 0 || len(p.VotedMemberIDs) != 0 {
		t.Errorf("new project carries votes: %+v", p)
	}

	if _, err := f.AddProject(context.Background(), "  ", "desc", core.Money{Cents: 100}, "", ""); !errors.Is(err, core.ErrEmptyTitle) {
		t.Errorf("blank title error = %v, want ErrEmptyTitle", err)
	}
}

func TestEditProject_StatusUnrestricted(t *testing.T) {
	f := newTestFund(t)
	ctx := context.Background()

	completed := core.ProjectCompleted
	p, ok, err := f.EditProject(ctx, 1, ProjectUpdate{Status: &completed})
	if err != nil || !ok {
		t.Fatalf("EditProject() = ok %v, err %v", ok, err)
	}
	if p.Status != core.ProjectCompleted {
		t.Errorf("status = %s", p.Status)
	}
	if p.Votes != 1 || len(p.VotedMemberIDs) != 1 {
		t.Errorf("votes lost across transition: %+v", p)
	}

	// reopening a completed project is allowed
	voting := core.ProjectVoting
	p, _, err = f.EditProject(ctx, 1, ProjectUpdate{Status: &voting})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	if p.Status != core.ProjectVoting {
		t.Errorf("status after reopen = %s", p.Status)
	}

	bad := core.ProjectStatus("archived")
	if _, _, err := f.EditProject(ctx, 1, ProjectUpdate{Status: &bad}); !errors.Is(err, core.ErrInvalidStatus) {
		t.Errorf("invalid status error = %v", err)
	}
}

func TestVote(t *testing.T) {
	f := newTestFund(t)
	ctx := context.Background()

	p, err := f.Vote(ctx, 1, 3)
	if err != nil {
		t.Fatalf("Vote() error = %v", err)
	}
	if p.Votes != 2 || !p.HasVoted(3) {
		t.Errorf("project after vote = %+v", p)
	}

	if _, err := f.Vote(ctx, 1, 3); !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("repeat vote error = %v, want ErrAlreadyVoted", err)
	}
	if _, err := f.Vote(ctx, 99, 3); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("missing project error = %v", err)
	}
	if _, err := f.Vote(ctx, 1, 99); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("missing member error = %v", err)
	}

	p, _ = f.ProjectByID(1)
	if p.Votes != 2 {
		t.Errorf("failed votes changed the count: %d", p.Votes)
	}
}

func TestProjects_HonorsShowCompletedSetting(t *testing.T) {
	f := newTestFund(t)
	ctx := context.Background()

	completed := core.ProjectCompleted
	if _, _, err := f.EditProject(ctx, 2, ProjectUpdate{Status: &completed}); err != nil {
		t.Fatalf("EditProject() error = %v", err)
	}

	if got := f.Projects(core.StatusAll, core.SortVotes); len(got) != 2 {
		t.Errorf("with showCompleted on: %d projects, want 2", len(got))
	}

	hide := false
	if _, err := f.UpdateSettings(ctx, SettingsUpdate{ShowCompleted: &hide}); err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	got := f.Projects(core.StatusAll, core.SortVotes)
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("with showCompleted off: %+v", got)
	}

	// an explicit completed filter overrides the setting
	got = f.Projects(core.ProjectCompleted, core.SortVotes)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("explicit completed filter: %+v", got)
	}
}

func TestDeleteProject(t *testing.T) {
	f := newTestFund(t)
	ctx := context.Background()

	if err := f.DeleteProject(ctx, 1); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	if _, ok := f.ProjectByID(1); ok {
		t.Error("project still present after delete")
	}
	if err := f.DeleteProject(ctx, 1); err != nil {
		t.Errorf("second delete error = %v", err)
	}
}
