package api

import (
	"html/template"
	"net/http"

	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/logger"
	"github.com/vytor/chessdash/internal/models"
)

// handleDashboard renders the single-page dashboard. Charts are separate
// image requests carrying the same query string, so the page itself only
// needs the summary, the selection lists and the tables.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering dashboard")

	q := r.URL.Query()
	data := pageData{
		"query":     q,
		"raw_query": template.URL(q.Encode()),
	}

	filter, err := parseFilter(q)
	if err != nil {
		log.Warn("invalid dashboard filter: %v", err)
		data["error"] = errors.FromDomain(err).Message
		filter = models.GameFilter{}
	}

	summary, err := s.Stats.Summary(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	data["summary"] = summary

	for key, field := range map[string]string{
		"players":       string(models.FieldPlayer),
		"openings":      string(models.FieldOpening),
		"time_controls": string(models.FieldTimeControl),
	} {
		values, err := s.Stats.DistinctValues(r.Context(), field)
		if err != nil {
			log.Warn("failed to list %s: %v", field, err)
			continue
		}
		data[key] = values
	}

	if rates, err := s.Stats.WinRates(r.Context(), filter, string(models.FieldOpening), s.DefaultTopK, ""); err != nil {
		log.Warn("failed to compute win rates: %v", err)
	} else {
		data["win_rates"] = rates
	}

	if a, b := q.Get("a"), q.Get("b"); a != "" && b != "" {
		h2h, err := s.Stats.HeadToHead(r.Context(), filter, a, b, s.TrendWindow)
		if err != nil {
			data["error"] = errors.FromDomain(err).Message
		} else {
			data["head_to_head"] = h2h
		}
	}

	s.render(w, r, "dashboard.html", data)
}
