package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	if s.Metrics != nil {
		r.Use(s.Metrics.Middleware)
	}
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))

		r.Get("/", s.handleDashboard)

		r.Route("/api", func(r chi.Router) {
			r.Get("/fields/{field}/values", s.handleFieldValues)
			r.Get("/summary", s.handleSummary)
			r.Get("/games", s.handleGames)
			r.Get("/rank", s.handleRank)
			r.Get("/top", s.handleTop)
			r.Get("/win-rates", s.handleWinRates)
			r.Get("/trend", s.handleTrend)
			r.Get("/crosstab", s.handleCrossTab)
			r.Get("/head-to-head", s.handleHeadToHead)
		})

		r.Route("/charts", func(r chi.Router) {
			r.Get("/rank.png", s.handleRankChart)
			r.Get("/win-rates.png", s.handleWinRatesChart)
			r.Get("/trend.png", s.handleTrendChart)
		})
	})
	return r
}
