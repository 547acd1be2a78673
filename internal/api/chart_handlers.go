package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/vytor/chessdash/internal/charts"
	"github.com/vytor/chessdash/internal/logger"
)

type chartSize struct {
	Width  int `query:"width" validate:"omitempty,min=200,max=4096"`
	Height int `query:"height" validate:"omitempty,min=150,max=4096"`
}

func parseChartSize(r *http.Request) (charts.Size, error) {
	q := r.URL.Query()
	var (
		p   chartSize
		err error
	)
	if p.Width, err = intParam(q, "width", 0); err != nil {
		return charts.Size{}, err
	}
	if p.Height, err = intParam(q, "height", 0); err != nil {
		return charts.Size{}, err
	}
	if err := validateStruct(p); err != nil {
		return charts.Size{}, err
	}
	return charts.Size{Width: p.Width, Height: p.Height}, nil
}

// writePNG renders into a buffer first so a failed render can still
// produce a proper error response.
func writePNG(w http.ResponseWriter, r *http.Request, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context()).Warn("failed to write chart: %v", err)
	}
}

func (s *Server) handleRankChart(w http.ResponseWriter, r *http.Request) {
	filter, p, err := s.parseRank(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	size, err := parseChartSize(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	table, err := s.Stats.Rank(r.Context(), filter, p.Field, p.TopK)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writePNG(w, r, func(buf *bytes.Buffer) error {
		return charts.Frequency(buf, table, size)
	})
}

func (s *Server) handleWinRatesChart(w http.ResponseWriter, r *http.Request) {
	filter, p, err := s.parseWinRates(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	size, err := parseChartSize(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	table, err := s.Stats.WinRates(r.Context(), filter, p.GroupField, p.TopK, p.SortBy)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writePNG(w, r, func(buf *bytes.Buffer) error {
		return charts.WinRates(buf, table, size)
	})
}

func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	filter, p, err := s.parseTrend(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	size, err := parseChartSize(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	points, err := s.Stats.Trend(r.Context(), filter, p.OrderField, p.ValueField, p.Window)
	if err != nil {
		handleError(w, r, err)
		return
	}
	title := p.ValueField + " (" + strconv.Itoa(p.Window) + "-game moving average)"
	writePNG(w, r, func(buf *bytes.Buffer) error {
		return charts.Trend(buf, title, p.OrderField, p.ValueField, points, size)
	})
}
