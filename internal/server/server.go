// Package server exposes the store over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Makepad-fr/skycount/internal/signal"
	"github.com/Makepad-fr/skycount/internal/store"
)

const maxBody = 1 << 20

// Server serves the state API.
type Server struct {
	store   *store.Store
	log     *zap.Logger
	reg     *prometheus.Registry
	metrics *metrics
	unsub   func()
	router  chi.Router
}

// New wires routes and metrics over st. Close releases the store subscription.
func New(st *store.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		store:   st,
		log:     log,
		reg:     reg,
		metrics: newMetrics(reg),
	}
	s.metrics.observe(st.GetState())
	s.unsub = st.Subscribe(s.metrics.observe)
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/state", s.handleState)
	r.Post("/dispatch", s.handleDispatch)
	r.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	s.router = r
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler { return s.router }

// Close drops the store subscription.
func (s *Server) Close() {
	if s.unsub != nil {
		s.unsub()
	}
}

// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /state
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.GetState())
}

// POST /dispatch: body is a wire signal, {"type": "...", "payload": ...}.
// Unknown types are accepted and change nothing.
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read body")
		return
	}
	sig, err := signal.Decode(body)
	if err != nil {
		status := http.StatusBadRequest
		msg := "invalid signal"
		if errors.Is(err, signal.ErrMissingType) {
			msg = "missing type"
		}
		s.log.Warn("dispatch rejected", zap.Error(err))
		writeError(w, status, msg)
		return
	}

	label := sig.Type()
	if _, ok := sig.(signal.Unknown); ok {
		label = "unknown"
	}
	s.metrics.signals.WithLabelValues(label).Inc()
	next := s.store.Dispatch(sig)
	s.log.Info("dispatch", zap.String("type", sig.Type()), zap.String("remote", r.RemoteAddr))
	writeJSON(w, http.StatusOK, next)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ListenAndServe runs the API on addr until ctx is done, then shuts down
// with a 5s grace period.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Info("server started", zap.String("addr", addr))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return err
		}
		s.log.Info("server stopped")
		return nil
	}
}
