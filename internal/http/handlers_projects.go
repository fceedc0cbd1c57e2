package http

import (
	"errors"
	"net/http"
	"strings"

	"sunduq/internal/core"
	"sunduq/internal/services"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := core.StatusAll
	if v := strings.TrimSpace(q.Get("status")); v != "" {
		filter = core.ProjectStatus(v)
		if filter != core.StatusAll && !filter.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
	}

	key := core.SortVotes
	if v := strings.TrimSpace(q.Get("sort")); v != "" {
		key = core.SortKey(v)
		if !key.Valid() {
			writeError(w, http.StatusBadRequest, "invalid sort key")
			return
		}
	}

	writeJSON(w, http.StatusOK, s.fund.Projects(filter, key))
}

type addProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Cost        string `json:"cost"`
	Status      string `json:"status"`
	Image       string `json:"image"`
}

func (s *Server) handleAddProject(w http.ResponseWriter, r *http.Request) {
	var req addProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	cost, err := parseAmount(req.Cost)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cost: "+err.Error())
		return
	}

	p, err := s.fund.AddProject(r.Context(), req.Title, req.Description, cost, core.ProjectStatus(req.Status), req.Image)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.invalidateOverview()
	writeJSON(w, http.StatusCreated, p)
}

type editProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Cost        *string `json:"cost"`
	Status      *string `json:"status"`
	Image       *string `json:"image"`
}

func (s *Server) handleEditProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req editProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	upd := services.ProjectUpdate{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
	}
	if req.Cost != nil {
		cost, err := parseAmount(*req.Cost)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid cost: "+err.Error())
			return
		}
		upd.Cost = &cost
	}
	if req.Status != nil {
		status := core.ProjectStatus(*req.Status)
		upd.Status = &status
	}

	p, found, err := s.fund.EditProject(r.Context(), id, upd)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	s.invalidateOverview()
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	if err := s.fund.DeleteProject(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.invalidateOverview()
	w.WriteHeader(http.StatusNoContent)
}

type voteRequest struct {
	MemberID int64 `json:"memberId"`
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	p, err := s.fund.Vote(r.Context(), id, req.MemberID)
	switch {
	case errors.Is(err, services.ErrProjectNotFound), errors.Is(err, services.ErrMemberNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, services.ErrAlreadyVoted):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}
