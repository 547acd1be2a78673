package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/chessdash/internal/logger"
	"github.com/vytor/chessdash/internal/models"
)

type rankParams struct {
	Field string `query:"field" validate:"required"`
	TopK  int    `query:"top_k" validate:"gte=0"`
}

type topParams struct {
	FilterField string `query:"filter_field" validate:"required"`
	Value       string `query:"value" validate:"required"`
	RankField   string `query:"rank_field" validate:"required"`
	TopK        int    `query:"top_k" validate:"gte=0"`
}

type winRateParams struct {
	GroupField string `query:"group_field" validate:"required"`
	TopK       int    `query:"top_k" validate:"gte=0"`
	SortBy     string `query:"sort_by" validate:"omitempty,oneof=none white_win_rate black_win_rate games"`
}

type trendParams struct {
	OrderField string `query:"order_field" validate:"required"`
	ValueField string `query:"value_field" validate:"required"`
	Window     int    `query:"window" validate:"gte=1"`
}

type crossTabParams struct {
	RowField string `query:"row_field" validate:"required"`
	ColField string `query:"col_field" validate:"required"`
}

type headToHeadParams struct {
	PlayerA string `query:"a" validate:"required"`
	PlayerB string `query:"b" validate:"required"`
	Window  int    `query:"window" validate:"gte=1"`
}

type trendResponse struct {
	OrderField string              `json:"order_field"`
	ValueField string              `json:"value_field"`
	Window     int                 `json:"window"`
	Points     []models.TrendPoint `json:"points"`
}

type crossTabResponse struct {
	RowField models.Field `json:"row_field"`
	ColField models.Field `json:"col_field"`
	Rows     []string     `json:"rows"`
	Cols     []string     `json:"cols"`
	Counts   [][]int      `json:"counts"`
	Total    int          `json:"total"`
	Skipped  int          `json:"skipped"`
}

func newCrossTabResponse(tab models.CrossTab) crossTabResponse {
	counts := make([][]int, len(tab.Rows))
	for i, row := range tab.Rows {
		counts[i] = make([]int, len(tab.Cols))
		for j, col := range tab.Cols {
			counts[i][j] = tab.Count(row, col)
		}
	}
	return crossTabResponse{
		RowField: tab.RowField,
		ColField: tab.ColField,
		Rows:     tab.Rows,
		Cols:     tab.Cols,
		Counts:   counts,
		Total:    tab.Total,
		Skipped:  tab.Skipped,
	}
}

func (s *Server) parseRank(r *http.Request) (models.GameFilter, rankParams, error) {
	q := r.URL.Query()
	filter, err := parseFilter(q)
	if err != nil {
		return filter, rankParams{}, err
	}
	p := rankParams{Field: stringParam(q, "field", string(models.FieldOpening))}
	if p.TopK, err = intParam(q, "top_k", s.DefaultTopK); err != nil {
		return filter, p, err
	}
	return filter, p, validateStruct(p)
}

func (s *Server) parseWinRates(r *http.Request) (models.GameFilter, winRateParams, error) {
	q := r.URL.Query()
	filter, err := parseFilter(q)
	if err != nil {
		return filter, winRateParams{}, err
	}
	p := winRateParams{
		GroupField: stringParam(q, "group_field", string(models.FieldOpening)),
		SortBy:     stringParam(q, "sort_by", ""),
	}
	if p.TopK, err = intParam(q, "top_k", s.DefaultTopK); err != nil {
		return filter, p, err
	}
	return filter, p, validateStruct(p)
}

func (s *Server) parseTrend(r *http.Request) (models.GameFilter, trendParams, error) {
	q := r.URL.Query()
	filter, err := parseFilter(q)
	if err != nil {
		return filter, trendParams{}, err
	}
	p := trendParams{
		OrderField: stringParam(q, "order_field", string(models.FieldGameNumber)),
		ValueField: stringParam(q, "value_field", string(models.FieldAverageElo)),
	}
	if p.Window, err = intParam(q, "window", s.TrendWindow); err != nil {
		return filter, p, err
	}
	return filter, p, validateStruct(p)
}

func (s *Server) handleFieldValues(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")
	log := logger.FromContext(r.Context()).WithField("field", field)
	log.Debug("listing field values")

	values, err := s.Stats.DistinctValues(r.Context(), field)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"field":  field,
		"values": values,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := s.Stats.Summary(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	filter, p, err := s.parseRank(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	table, err := s.Stats.Rank(r.Context(), filter, p.Field, p.TopK)
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Debug("ranked %d values of %s", len(table.Entries), p.Field)
	writeJSON(w, r, http.StatusOK, table)
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := parseFilter(q)
	if err != nil {
		handleError(w, r, err)
		return
	}
	p := topParams{
		FilterField: stringParam(q, "filter_field", ""),
		Value:       stringParam(q, "value", ""),
		RankField:   stringParam(q, "rank_field", ""),
	}
	if p.TopK, err = intParam(q, "top_k", s.DefaultTopK); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validateStruct(p); err != nil {
		handleError(w, r, err)
		return
	}

	table, err := s.Stats.TopByField(r.Context(), filter, p.FilterField, p.Value, p.RankField, p.TopK)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, table)
}

func (s *Server) handleWinRates(w http.ResponseWriter, r *http.Request) {
	filter, p, err := s.parseWinRates(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	table, err := s.Stats.WinRates(r.Context(), filter, p.GroupField, p.TopK, p.SortBy)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, table)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	filter, p, err := s.parseTrend(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	points, err := s.Stats.Trend(r.Context(), filter, p.OrderField, p.ValueField, p.Window)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if points == nil {
		points = []models.TrendPoint{}
	}
	writeJSON(w, r, http.StatusOK, trendResponse{
		OrderField: p.OrderField,
		ValueField: p.ValueField,
		Window:     p.Window,
		Points:     points,
	})
}

func (s *Server) handleCrossTab(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := parseFilter(q)
	if err != nil {
		handleError(w, r, err)
		return
	}
	p := crossTabParams{
		RowField: stringParam(q, "row_field", ""),
		ColField: stringParam(q, "col_field", ""),
	}
	if err := validateStruct(p); err != nil {
		handleError(w, r, err)
		return
	}

	tab, err := s.Stats.CrossTab(r.Context(), filter, p.RowField, p.ColField)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newCrossTabResponse(tab))
}

func (s *Server) handleHeadToHead(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := parseFilter(q)
	if err != nil {
		handleError(w, r, err)
		return
	}
	p := headToHeadParams{
		PlayerA: stringParam(q, "a", ""),
		PlayerB: stringParam(q, "b", ""),
	}
	if p.Window, err = intParam(q, "window", s.TrendWindow); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validateStruct(p); err != nil {
		handleError(w, r, err)
		return
	}

	log := logger.FromContext(r.Context()).WithFields(map[string]any{"a": p.PlayerA, "b": p.PlayerB})
	log.Debug("comparing players")

	h2h, err := s.Stats.HeadToHead(r.Context(), filter, p.PlayerA, p.PlayerB, p.Window)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, h2h)
}
