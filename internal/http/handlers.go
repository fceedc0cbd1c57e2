package http

import (
	"net/http"
	"strconv"

	"sunduq/internal/core"
)

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseAmount turns a decimal string like "12.50" into cents.
func parseAmount(s string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: cents}, nil
}

// parseAmountAllowZero is parseAmount for fields where zero is legal.
func parseAmountAllowZero(s string) (core.Money, error) {
	cents, err := core.ParseDecimalToCentsAllowZero(s)
	if err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: cents}, nil
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if ov, ok := s.overviewCache.Get(overviewCacheKey); ok {
		writeJSON(w, http.StatusOK, ov)
		return
	}
	ov := s.fund.Overview()
	s.overviewCache.Set(overviewCacheKey, ov)
	writeJSON(w, http.StatusOK, ov)
}
