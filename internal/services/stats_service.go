package services

import (
	"context"
	"time"

	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/logger"
	"github.com/vytor/chessdash/internal/models"
	"github.com/vytor/chessdash/internal/query"
	"github.com/vytor/chessdash/internal/records"
)

// StatsService answers dashboard queries over the loaded record store.
// Field and sort names arrive as strings from the presentation layer and are
// resolved here; every returned error is an *errors.AppError.
type StatsService interface {
	Summary(ctx context.Context, filter models.GameFilter) (models.Summary, error)
	DistinctValues(ctx context.Context, field string) ([]string, error)
	Rank(ctx context.Context, filter models.GameFilter, field string, topK int) (models.FrequencyTable, error)
	TopByField(ctx context.Context, filter models.GameFilter, filterField, value, rankField string, topK int) (models.FrequencyTable, error)
	WinRates(ctx context.Context, filter models.GameFilter, groupField string, topK int, sortBy string) (models.RateTable, error)
	Trend(ctx context.Context, filter models.GameFilter, orderField, valueField string, window int) ([]models.TrendPoint, error)
	CrossTab(ctx context.Context, filter models.GameFilter, rowField, colField string) (models.CrossTab, error)
	HeadToHead(ctx context.Context, filter models.GameFilter, playerA, playerB string, window int) (models.HeadToHead, error)
	ListGames(ctx context.Context, filter models.GameFilter, limit, offset int) ([]models.GameRecord, int, error)
}

// QueryObserver receives the duration and outcome of every query.
type QueryObserver interface {
	ObserveQuery(name string, d time.Duration, err error)
}

type statsService struct {
	store    *records.Store
	observer QueryObserver
}

// NewStatsService creates a new StatsService. observer may be nil.
func NewStatsService(store *records.Store, observer QueryObserver) StatsService {
	return &statsService{store: store, observer: observer}
}

func (s *statsService) observe(name string, start time.Time, err error) {
	if s.observer != nil {
		s.observer.ObserveQuery(name, time.Since(start), err)
	}
}

func (s *statsService) Summary(ctx context.Context, filter models.GameFilter) (models.Summary, error) {
	log := logger.FromContext(ctx)
	log.Debug("summarizing games: filter=%+v", filter)

	start := time.Now()
	summary := query.Summarize(s.store, filter)
	s.observe("summary", start, nil)
	return summary, nil
}

func (s *statsService) DistinctValues(ctx context.Context, field string) ([]string, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing distinct values: field=%s", field)

	f, err := parseField("field", field)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	values, err := s.store.DistinctValues(f)
	s.observe("distinct_values", start, err)
	if err != nil {
		return nil, fail(log, "list distinct values", err)
	}
	return values, nil
}

func (s *statsService) Rank(ctx context.Context, filter models.GameFilter, field string, topK int) (models.FrequencyTable, error) {
	log := logger.FromContext(ctx)
	log.Debug("ranking by frequency: field=%s, top_k=%d", field, topK)

	f, err := parseField("field", field)
	if err != nil {
		return models.FrequencyTable{}, err
	}

	start := time.Now()
	table, err := query.RankByFrequency(s.store, filter, f, topK)
	s.observe("rank", start, err)
	if err != nil {
		return models.FrequencyTable{}, fail(log, "rank by frequency", err)
	}
	return table, nil
}

func (s *statsService) TopByField(ctx context.Context, filter models.GameFilter, filterField, value, rankField string, topK int) (models.FrequencyTable, error) {
	log := logger.FromContext(ctx)
	log.Debug("ranking within subset: %s=%q, rank_field=%s, top_k=%d", filterField, value, rankField, topK)

	ff, err := parseField("filter_field", filterField)
	if err != nil {
		return models.FrequencyTable{}, err
	}
	rf, err := parseField("rank_field", rankField)
	if err != nil {
		return models.FrequencyTable{}, err
	}

	start := time.Now()
	table, err := query.TopNByField(s.store, filter, ff, value, rf, topK)
	s.observe("top", start, err)
	if err != nil {
		return models.FrequencyTable{}, fail(log, "rank within subset", err)
	}
	return table, nil
}

func (s *statsService) WinRates(ctx context.Context, filter models.GameFilter, groupField string, topK int, sortBy string) (models.RateTable, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing win rates: group_field=%s, top_k=%d, sort_by=%s", groupField, topK, sortBy)

	f, err := parseField("group_field", groupField)
	if err != nil {
		return models.RateTable{}, err
	}
	key, err := query.ParseSortKey(sortBy)
	if err != nil {
		return models.RateTable{}, errors.NewValidationError("sort_by", err.Error())
	}

	start := time.Now()
	table, err := query.WinRateByGroup(s.store, filter, f, topK, key)
	s.observe("win_rates", start, err)
	if err != nil {
		return models.RateTable{}, fail(log, "compute win rates", err)
	}
	return table, nil
}

func (s *statsService) Trend(ctx context.Context, filter models.GameFilter, orderField, valueField string, window int) ([]models.TrendPoint, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing rolling trend: order_field=%s, value_field=%s, window=%d", orderField, valueField, window)

	of, err := parseField("order_field", orderField)
	if err != nil {
		return nil, err
	}
	vf, err := parseField("value_field", valueField)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	trend, err := query.RollingTrend(s.store, filter, of, vf, window)
	if err != nil {
		s.observe("trend", start, err)
		return nil, fail(log, "compute rolling trend", err)
	}
	points := trend.Points()
	s.observe("trend", start, nil)
	return points, nil
}

func (s *statsService) CrossTab(ctx context.Context, filter models.GameFilter, rowField, colField string) (models.CrossTab, error) {
	log := logger.FromContext(ctx)
	log.Debug("cross tabulating: row_field=%s, col_field=%s", rowField, colField)

	rf, err := parseField("row_field", rowField)
	if err != nil {
		return models.CrossTab{}, err
	}
	cf, err := parseField("col_field", colField)
	if err != nil {
		return models.CrossTab{}, err
	}

	start := time.Now()
	tab, err := query.CrossTabulate(s.store, filter, rf, cf)
	s.observe("crosstab", start, err)
	if err != nil {
		return models.CrossTab{}, fail(log, "cross tabulate", err)
	}
	return tab, nil
}

func (s *statsService) HeadToHead(ctx context.Context, filter models.GameFilter, playerA, playerB string, window int) (models.HeadToHead, error) {
	log := logger.FromContext(ctx)
	log.Debug("comparing players: a=%q, b=%q, window=%d", playerA, playerB, window)

	start := time.Now()
	h2h, err := query.HeadToHead(s.store, filter, playerA, playerB, window)
	s.observe("head_to_head", start, err)
	if err != nil {
		return models.HeadToHead{}, fail(log, "compare players", err)
	}
	return h2h, nil
}

func (s *statsService) ListGames(ctx context.Context, filter models.GameFilter, limit, offset int) ([]models.GameRecord, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing games: limit=%d, offset=%d", limit, offset)

	if limit < 0 {
		return nil, 0, errors.NewValidationError("limit", "must not be negative")
	}
	if offset < 0 {
		return nil, 0, errors.NewValidationError("offset", "must not be negative")
	}

	start := time.Now()
	games, total := query.Games(s.store, filter, offset, limit)
	s.observe("games", start, nil)
	return games, total, nil
}

func parseField(name, value string) (models.Field, error) {
	f, err := models.ParseField(value)
	if err != nil {
		return "", errors.NewValidationError(name, err.Error())
	}
	return f, nil
}

// fail logs err at a level matching its status and converts it to an AppError.
func fail(log *logger.Logger, action string, err error) error {
	appErr := errors.FromDomain(err)
	if appErr.Status >= 500 {
		log.Error("failed to %s: %v", action, err)
	} else {
		log.Debug("could not %s: %v", action, err)
	}
	return appErr
}
