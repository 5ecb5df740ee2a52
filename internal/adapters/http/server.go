package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
	"github.com/aretw0/puffin/pkg/registry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes published snapshots and the registry over HTTP.
// It only reads from the SnapshotStore and never touches the orchestrator.
type Server struct {
	store      ports.SnapshotStore
	registry   *registry.Registry
	gatherer   prometheus.Gatherer
	defaultRun string
	version    string
	logger     *slog.Logger
}

type Option func(*Server)

// WithGatherer exposes the gatherer's metrics on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithDefaultRun sets the run served by /state.
func WithDefaultRun(id string) Option {
	return func(s *Server) {
		if id != "" {
			s.defaultRun = id
		}
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// StateView is one registry entry as served by /registry.
type StateView struct {
	State  domain.SceneStateEnum `json:"state"`
	Scenes []domain.SceneType    `json:"scenes"`
}

// NewHandler creates the introspection router.
func NewHandler(store ports.SnapshotStore, reg *registry.Registry, opts ...Option) http.Handler {
	s := &Server{
		store:      store,
		registry:   reg,
		defaultRun: "local",
		version:    "dev",
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Get("/info", s.info)
	r.Get("/registry", s.listRegistry)
	r.Get("/state", s.defaultState)
	r.Get("/runs", s.listRuns)
	r.Get("/runs/{runID}", s.runState)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) info(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "puffin",
		"version": s.version,
	})
}

func (s *Server) listRegistry(w http.ResponseWriter, _ *http.Request) {
	if s.registry == nil {
		http.Error(w, "registry not available", http.StatusNotFound)
		return
	}
	views := make([]StateView, 0, len(s.registry.States()))
	for _, state := range s.registry.States() {
		def := s.registry.MustLookup(state)
		views = append(views, StateView{State: state, Scenes: def.Scenes()})
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("list runs failed", "err", err)
		http.Error(w, "failed to list runs", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) defaultState(w http.ResponseWriter, r *http.Request) {
	s.serveSnapshot(w, r, s.defaultRun)
}

func (s *Server) runState(w http.ResponseWriter, r *http.Request) {
	s.serveSnapshot(w, r, chi.URLParam(r, "runID"))
}

func (s *Server) serveSnapshot(w http.ResponseWriter, r *http.Request, runID string) {
	snap, err := s.store.Load(r.Context(), runID)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			http.Error(w, "no snapshot for run "+runID, http.StatusNotFound)
			return
		}
		s.logger.Error("load snapshot failed", "run_id", runID, "err", err)
		http.Error(w, "failed to load snapshot", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response failed", "err", err)
	}
}
