// Package httpapi serves the operational HTTP endpoints: health, Prometheus
// metrics and page view statistics.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/logging"
	"github.com/dmitrijs2005/citizenportal/internal/server/metrics"
	"github.com/gorilla/mux"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 5 * time.Second
	defaultStatsHours = 24
	maxStatsHours     = 24 * 366
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ViewCounter counts page views per page since a point in time.
type ViewCounter interface {
	ViewsSince(ctx context.Context, t time.Time) (map[string]int64, error)
}

type Server struct {
	address string
	logger  logging.Logger
	db      Pinger
	views   ViewCounter
	now     func() time.Time
}

func NewServer(address string, l logging.Logger, db Pinger, views ViewCounter) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "ops_http"),
		db:      db,
		views:   views,
		now:     time.Now,
	}
}

// Router returns the mux with all ops routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/stats/pageviews", s.handlePageViews).Methods(http.MethodGet)
	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{Handler: s.Router(), ReadHeaderTimeout: readHeaderTimeout}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping ops HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting ops HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePageViews returns view counts per page over the last ?hours=N
// hours, 24 by default and at most a year.
func (s *Server) handlePageViews(w http.ResponseWriter, r *http.Request) {
	hours := defaultStatsHours
	if v := r.URL.Query().Get("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "hours must be a positive integer"})
			return
		}
		hours = min(n, maxStatsHours)
	}

	since := s.now().Add(-time.Duration(hours) * time.Hour)
	counts, err := s.views.ViewsSince(r.Context(), since)
	if err != nil {
		s.logger.Error(r.Context(), "page view stats failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if counts == nil {
		counts = map[string]int64{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"since": since.UTC().Format(time.RFC3339),
		"views": counts,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
