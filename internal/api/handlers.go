package api

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/vytor/chessdash/internal/logger"
	"github.com/vytor/chessdash/internal/metrics"
	"github.com/vytor/chessdash/internal/services"
)

// Server is the stateless HTTP front end over StatsService. Every request
// carries its full filter in the query string.
type Server struct {
	Stats       services.StatsService
	Metrics     *metrics.Manager // nil disables /metrics
	Templates   *template.Template
	DefaultTopK int
	TrendWindow int
}

type pageData map[string]any

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	log := logger.FromContext(r.Context())
	if s.Templates == nil {
		log.Error("no templates loaded, cannot render %s", name)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
