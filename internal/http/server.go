// Package http exposes the fund as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"sunduq/internal/cache"
	applog "sunduq/internal/log"
	"sunduq/internal/middleware/ratelimit"
	"sunduq/internal/middleware/security"
	"sunduq/internal/middleware/trace"
	"sunduq/internal/services"
)

const overviewCacheKey = "overview"

type Server struct {
	http.Server
	fund *services.Fund

	limiter  *ratelimit.Limiter
	detector *security.Detector

	// dashboard overview cache; invalidated on every mutation
	overviewCache *cache.LRUCache[services.Overview]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, fund *services.Fund) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:           addr,
			Handler:        nil, // set below, after the middleware chain
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		fund:          fund,
		limiter:       ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:      security.NewDetector(),
		overviewCache: cache.NewLRUCache[services.Overview](1, 5*time.Minute),
		cacheManager:  cache.NewManager(),
	}
	s.cacheManager.Register(s.overviewCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.HandleFunc("GET /api/overview", s.handleOverview)

	mux.HandleFunc("GET /api/members", s.handleListMembers)
	mux.HandleFunc("POST /api/members", s.handleAddMember)
	mux.HandleFunc("PUT /api/members/{id}", s.handleEditMember)
	mux.HandleFunc("DELETE /api/members/{id}", s.handleDeleteMember)
	mux.HandleFunc("POST /api/members/{id}/toggle", s.handleToggleMember)
	mux.HandleFunc("PUT /api/members/{id}/profile", s.handleUpdateProfile)

	mux.HandleFunc("GET /api/projects", s.handleListProjects)
	mux.HandleFunc("POST /api/projects", s.handleAddProject)
	mux.HandleFunc("PUT /api/projects/{id}", s.handleEditProject)
	mux.HandleFunc("DELETE /api/projects/{id}", s.handleDeleteProject)
	mux.HandleFunc("POST /api/projects/{id}/vote", s.handleVote)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleRecordTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleEditTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("POST /api/deductions", s.handleRunDeduction)

	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.handleUpdateSettings)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(s.detector.ExtractClientIP)
	requestLogger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)

	var handler http.Handler = mux
	handler = s.limiter.Middleware(s.detector.ExtractClientIP, nil)(handler)
	handler = applog.Middleware(requestLogger)(handler)
	handler = headers.Middleware(handler)
	handler = tracer.Middleware(handler)
	s.Server.Handler = handler

	return s
}

// invalidateOverview drops the cached dashboard snapshot after a mutation.
func (s *Server) invalidateOverview() {
	s.overviewCache.Delete(overviewCacheKey)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	// the fund is loaded at startup; reaching this handler means we are ready
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Shutdown stops background goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
