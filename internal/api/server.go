// File path: internal/api/server.go

// Package api exposes the dashboard backend over HTTP: customer and report
// CRUD, section reads, and the CSV import endpoints that drive the engine.
package api

import (
	"encoding/json"
	"expvar"
	"net/http"
	"sync"
	"time"

	chi "github.com/go-chi/chi/v5"

	"opsboard/internal/common"
	"opsboard/internal/common/telemetry"
	"opsboard/internal/importer"
	"opsboard/internal/store"
)

// Config controls request handling limits.
type Config struct {
	// MaxUploadBytes bounds the accepted CSV upload size.
	MaxUploadBytes int64
	// AuditLimit bounds the /v1/imports listing.
	AuditLimit int
}

// DefaultConfig returns the standard configuration used when no overrides
// are provided.
func DefaultConfig() Config {
	return Config{
		MaxUploadBytes: 16 << 20,
		AuditLimit:     50,
	}
}

// Server routes dashboard requests to the store and the import engine.
type Server struct {
	router chi.Router
	store  *store.Store
	engine *importer.Engine
	cfg    Config

	// Applies racing to reconcile the same customer's section would be a
	// lost-update hazard; the engine does not arbitrate it, so the API
	// serializes applies per customer.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewServer constructs the HTTP server around an opened store and a
// configured engine.
func NewServer(st *store.Store, engine *importer.Engine, cfg *Config) *Server {
	config := DefaultConfig()
	if cfg != nil {
		if cfg.MaxUploadBytes > 0 {
			config.MaxUploadBytes = cfg.MaxUploadBytes
		}
		if cfg.AuditLimit > 0 {
			config.AuditLimit = cfg.AuditLimit
		}
	}
	s := &Server{
		router: chi.NewRouter(),
		store:  st,
		engine: engine,
		cfg:    config,
		locks:  make(map[int64]*sync.Mutex),
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) customerLock(id int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			dur := time.Since(start)
			telemetry.RecordRequest(r.Method+" "+r.URL.Path, dur)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", dur, "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Get("/v1/customers", s.handleListCustomers)
	s.router.Post("/v1/customers", s.handleCreateCustomer)
	s.router.Get("/v1/customers/{customerID}", s.handleGetCustomer)
	s.router.Get("/v1/customers/{customerID}/reports", s.handleListReports)
	s.router.Post("/v1/customers/{customerID}/reports", s.handleCreateReport)
	s.router.Get("/v1/customers/{customerID}/sections/{kind}", s.handleGetSection)

	s.router.Post("/v1/import/{kind}", s.handleImport)
	s.router.Get("/v1/imports", s.handleListImports)

	s.router.Get("/v1/logs", s.handleLogs)

	s.router.Method(http.MethodGet, "/debug/vars", expvar.Handler())
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
