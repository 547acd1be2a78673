package api

import (
	"net/http"

	"github.com/vytor/chessdash/internal/logger"
	"github.com/vytor/chessdash/internal/models"
)

// handleHealth returns a liveness probe - always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady returns 200 once a non-empty record store is being served, 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if s.Stats == nil {
		log.Warn("readiness check failed - no stats service")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Not loaded"))
		return
	}

	summary, err := s.Stats.Summary(r.Context(), models.GameFilter{})
	if err != nil {
		log.Warn("readiness check failed - summary: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Store unavailable"))
		return
	}
	if summary.Games == 0 {
		log.Warn("readiness check failed - store is empty")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("No records loaded"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
