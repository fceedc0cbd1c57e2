package http

import (
	"net/http"
	"time"

	"sunduq/internal/core"
	"sunduq/internal/services"
)

type memberPayload struct {
	core.Member
	TotalContribution core.Money `json:"totalContribution"`
}

func memberResponse(m core.Member, now time.Time) memberPayload {
	m.Password = "" // never returned
	return memberPayload{
		Member:            m,
		TotalContribution: core.TotalContribution(m, now),
	}
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	members := s.fund.Members()
	out := make([]memberPayload, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse(m, now))
	}
	writeJSON(w, http.StatusOK, out)
}

type addMemberRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	MonthlyPledge string `json:"monthlyPledge"`
	JoinDate      string `json:"joinDate"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	pledge, err := parseAmountAllowZero(req.MonthlyPledge)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid monthly pledge: "+err.Error())
		return
	}
	joinDate, err := core.ParseDate(req.JoinDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid join date: "+err.Error())
		return
	}

	m, err := s.fund.AddMember(r.Context(), req.Name, req.Phone, pledge, joinDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.invalidateOverview()
	writeJSON(w, http.StatusCreated, memberResponse(m, time.Now()))
}

type editMemberRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	MonthlyPledge *string `json:"monthlyPledge"`
	JoinDate      *string `json:"joinDate"`
}

func (s *Server) handleEditMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}
	var req editMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	upd := services.MemberUpdate{Name: req.Name, Phone: req.Phone}
	if req.MonthlyPledge != nil {
		pledge, err := parseAmountAllowZero(*req.MonthlyPledge)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid monthly pledge: "+err.Error())
			return
		}
		upd.MonthlyPledge = &pledge
	}
	if req.JoinDate != nil {
		d, err := core.ParseDate(*req.JoinDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid join date: "+err.Error())
			return
		}
		upd.JoinDate = &d
	}

	m, found, err := s.fund.EditMember(r.Context(), id, upd)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}
	s.invalidateOverview()
	writeJSON(w, http.StatusOK, memberResponse(m, time.Now()))
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}
	if err := s.fund.DeleteMember(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.invalidateOverview()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}
	m, found, err := s.fund.ToggleMemberStatus(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}
	s.invalidateOverview()
	writeJSON(w, http.StatusOK, memberResponse(m, time.Now()))
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	m, found, err := s.fund.UpdateAdminProfile(r.Context(), id, req.Name, req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}
	writeJSON(w, http.StatusOK, memberResponse(m, time.Now()))
}
