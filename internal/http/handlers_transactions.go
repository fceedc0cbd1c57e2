package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"sunduq/internal/core"
	applog "sunduq/internal/log"
	"sunduq/internal/services"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	typ := core.TransactionType(strings.TrimSpace(q.Get("type")))
	if typ != "" && !typ.Valid() {
		writeError(w, http.StatusBadRequest, "invalid type filter")
		return
	}

	writeJSON(w, http.StatusOK, s.fund.Transactions(typ, q.Get("search")))
}

type recordTransactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	MemberID    int64  `json:"memberId"`
	ProjectID   int64  `json:"projectId"`
}

func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req recordTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount: "+err.Error())
		return
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date: "+err.Error())
		return
	}

	t, err := s.fund.RecordTransaction(r.Context(), core.TransactionType(req.Type), amount, req.Description, date.Time, req.MemberID, req.ProjectID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.invalidateOverview()
	writeJSON(w, http.StatusCreated, t)
}

// editTransactionRequest omits type and memberId, which cannot change
// after creation. DisallowUnknownFields rejects attempts to send them.
type editTransactionRequest struct {
	Amount      *string `json:"amount"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	ProjectID   *int64  `json:"projectId"`
}

func (s *Server) handleEditTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}
	var req editTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	upd := services.TransactionUpdate{
		Description: req.Description,
		ProjectID:   req.ProjectID,
	}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid amount: "+err.Error())
			return
		}
		upd.Amount = &amount
	}
	if req.Date != nil {
		d, err := core.ParseDate(*req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date: "+err.Error())
			return
		}
		upd.Date = &d.Time
	}

	t, found, err := s.fund.EditTransaction(r.Context(), id, upd)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	s.invalidateOverview()
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}
	if err := s.fund.DeleteTransaction(r.Context(), id); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to delete transaction", "transaction_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.invalidateOverview()
	w.WriteHeader(http.StatusNoContent)
}

type runDeductionRequest struct {
	Confirm bool `json:"confirm"`
}

type runDeductionResponse struct {
	Created []core.Transaction `json:"created"`
	Period  string             `json:"period"`
}

func (s *Server) handleRunDeduction(w http.ResponseWriter, r *http.Request) {
	var req runDeductionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	now := time.Now()
	created, err := s.fund.RunMonthlyDeduction(r.Context(), now, req.Confirm)
	if errors.Is(err, services.ErrDeductionAlreadyRan) {
		// re-running the same period needs confirm: true
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Monthly deduction failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if created == nil {
		created = []core.Transaction{}
	}
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Monthly deduction applied", "created", len(created), "period", now.Format("2006-01"))
	s.invalidateOverview()
	writeJSON(w, http.StatusOK, runDeductionResponse{
		Created: created,
		Period:  now.Format("2006-01"),
	})
}
