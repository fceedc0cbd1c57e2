package services

import (
	"context"
	"fmt"
	"strings"

	"sunduq/internal/core"
	"sunduq/internal/store"
)

// ProjectUpdate carries the editable project fields. Nil means leave the
// field unchanged. Status changes are unrestricted: the administrator may
// move a project between any two states, including reopening a completed
// one, and votes are kept across transitions.
type ProjectUpdate struct {
	Title       *string
	Description *string
	Cost        *core.Money
	Status      *core.ProjectStatus
	Image       *string
}

// AddProject creates a project with no votes. status defaults to voting
// when empty.
func (f *Fund) AddProject(ctx context.Context, title, description string, cost core.Money, status core.ProjectStatus, image string) (core.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if status == "" {
		status = core.ProjectVoting
	}
	p := core.Project{
		ID:          f.nextID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Cost:        cost,
		Status:      status,
		Image:       image,
	}
	if err := p.Validate(); err != nil {
		return core.Project{}, err
	}

	f.st.Projects = append(f.st.Projects, p)
	if err := store.SaveProjects(ctx, f.kv, f.st.Projects); err != nil {
		f.st.Projects = f.st.Projects[:len(f.st.Projects)-1]
		return core.Project{}, fmt.Errorf("save projects: %w", err)
	}
	f.assignID()
	return p, nil
}

// EditProject applies upd to the project with the given id. Editing a
// missing id is a silent no-op: ok is false and err is nil.
func (f *Fund) EditProject(ctx context.Context, id int64, upd ProjectUpdate) (core.Project, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.projectIndex(id)
	if idx < 0 {
		return core.Project{}, false, nil
	}

	p := f.st.Projects[idx]
	if upd.Title != nil {
		p.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		p.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Cost != nil {
		p.Cost = *upd.Cost
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.Image != nil {
		p.Image = *upd.Image
	}
	if err := p.Validate(); err != nil {
		return core.Project{}, false, err
	}

	prev := f.st.Projects[idx]
	f.st.Projects[idx] = p
	if err := store.SaveProjects(ctx, f.kv, f.st.Projects); err != nil {
		f.st.Projects[idx] = prev
		return core.Project{}, false, fmt.Errorf("save projects: %w", err)
	}
	return p, true, nil
}

// DeleteProject removes the project. Transactions that referenced it keep
// their dangling project reference. Missing ids are not an error.
func (f *Fund) DeleteProject(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.projectIndex(id)
	if idx < 0 {
		return nil
	}

	next := make([]core.Project, 0, len(f.st.Projects)-1)
	next = append(next, f.st.Projects[:idx]...)
	next = append(next, f.st.Projects[idx+1:]...)
	if err := store.SaveProjects(ctx, f.kv, next); err != nil {
		return fmt.Errorf("save projects: %w", err)
	}
	f.st.Projects = next
	return nil
}

// Vote records memberID's vote on the project. Each member votes at most
// once per project and votes are not revocable.
func (f *Fund) Vote(ctx context.Context, projectID, memberID int64) (core.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.memberIndex(memberID) < 0 {
		return core.Project{}, ErrMemberNotFound
	}
	idx := f.projectIndex(projectID)
	if idx < 0 {
		return core.Project{}, ErrProjectNotFound
	}

	p := f.st.Projects[idx]
	if p.HasVoted(memberID) {
		return core.Project{}, ErrAlreadyVoted
	}
	p.Votes++
	p.VotedMemberIDs = append(append([]int64(nil), p.VotedMemberIDs...), memberID)

	prev := f.st.Projects[idx]
	f.st.Projects[idx] = p
	if err := store.SaveProjects(ctx, f.kv, f.st.Projects); err != nil {
		f.st.Projects[idx] = prev
		return core.Project{}, fmt.Errorf("save projects: %w", err)
	}
	return p, nil
}

// Projects lists projects filtered by status and ordered by the given
// sort key. Completed projects are hidden when the fund's settings say
// so, unless the filter asks for them explicitly.
func (f *Fund) Projects(filter core.ProjectStatus, key core.SortKey) []core.Project {
	f.mu.Lock()
	defer f.mu.Unlock()
	includeCompleted := f.st.Settings.ShowCompleted || filter == core.ProjectCompleted
	return core.FilterProjects(f.st.Projects, filter, includeCompleted, key)
}

// ProjectByID returns the project with the given id.
func (f *Fund) ProjectByID(id int64) (core.Project, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if idx := f.projectIndex(id); idx >= 0 {
		return f.st.Projects[idx], true
	}
	return core.Project{}, false
}

// projectIndex finds id in the project list. Caller must hold mu.
func (f *Fund) projectIndex(id int64) int {
	for i, p := range f.st.Projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}
