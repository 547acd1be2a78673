package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessdash/internal/models"
)

// MockStatsService is a mock implementation of services.StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Summary(ctx context.Context, filter models.GameFilter) (models.Summary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(models.Summary), args.Error(1)
}

func (m *MockStatsService) DistinctValues(ctx context.Context, field string) ([]string, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStatsService) Rank(ctx context.Context, filter models.GameFilter, field string, topK int) (models.FrequencyTable, error) {
	args := m.Called(ctx, filter, field, topK)
	return args.Get(0).(models.FrequencyTable), args.Error(1)
}

func (m *MockStatsService) TopByField(ctx context.Context, filter models.GameFilter, filterField, value, rankField string, topK int) (models.FrequencyTable, error) {
	args := m.Called(ctx, filter, filterField, value, rankField, topK)
	return args.Get(0).(models.FrequencyTable), args.Error(1)
}

func (m *MockStatsService) WinRates(ctx context.Context, filter models.GameFilter, groupField string, topK int, sortBy string) (models.RateTable, error) {
	args := m.Called(ctx, filter, groupField, topK, sortBy)
	return args.Get(0).(models.RateTable), args.Error(1)
}

func (m *MockStatsService) Trend(ctx context.Context, filter models.GameFilter, orderField, valueField string, window int) ([]models.TrendPoint, error) {
	args := m.Called(ctx, filter, orderField, valueField, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrendPoint), args.Error(1)
}

func (m *MockStatsService) CrossTab(ctx context.Context, filter models.GameFilter, rowField, colField string) (models.CrossTab, error) {
	args := m.Called(ctx, filter, rowField, colField)
	return args.Get(0).(models.CrossTab), args.Error(1)
}

func (m *MockStatsService) HeadToHead(ctx context.Context, filter models.GameFilter, playerA, playerB string, window int) (models.HeadToHead, error) {
	args := m.Called(ctx, filter, playerA, playerB, window)
	return args.Get(0).(models.HeadToHead), args.Error(1)
}

func (m *MockStatsService) ListGames(ctx context.Context, filter models.GameFilter, limit, offset int) ([]models.GameRecord, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.GameRecord), args.Int(1), args.Error(2)
}

// MockQueryObserver is a mock implementation of services.QueryObserver
type MockQueryObserver struct {
	mock.Mock
}

func (m *MockQueryObserver) ObserveQuery(name string, d time.Duration, err error) {
	m.Called(name, d, err)
}
