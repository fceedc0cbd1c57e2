package http

import (
	"net/http"

	"sunduq/internal/services"
	"sunduq/internal/store"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.fund.Settings())
}

type updateSettingsRequest struct {
	StartingBalance *string `json:"startingBalance"`
	Announcement    *string `json:"announcement"`
	ShowStats       *bool   `json:"showStats"`
	ShowCompleted   *bool   `json:"showCompleted"`
	Theme           *string `json:"theme"`
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	upd := services.SettingsUpdate{
		Announcement:  req.Announcement,
		ShowStats:     req.ShowStats,
		ShowCompleted: req.ShowCompleted,
	}
	if req.StartingBalance != nil {
		balance, err := parseAmountAllowZero(*req.StartingBalance)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid starting balance: "+err.Error())
			return
		}
		upd.StartingBalance = &balance
	}
	if req.Theme != nil {
		theme := store.Theme(*req.Theme)
		upd.Theme = &theme
	}

	settings, err := s.fund.UpdateSettings(r.Context(), upd)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.invalidateOverview()
	writeJSON(w, http.StatusOK, settings)
}
