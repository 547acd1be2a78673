package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessdash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:           ":8080",
		DataPath:       "chess_games_raw.csv",
		DataFormat:     config.FormatCSV,
		LogLevel:       "INFO",
		DefaultTopK:    10,
		TrendWindow:    50,
		MetricsEnabled: true,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.DataPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DATA_PATH cannot be empty")
}

func TestValidate_DataFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{name: "csv", format: config.FormatCSV},
		{name: "pgn", format: config.FormatPGN},
		{name: "sqlite", format: config.FormatSQLite},
		{name: "parquet", format: "parquet", wantErr: true},
		{name: "empty", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.DataFormat = tt.format

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "DATA_FORMAT")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{name: "invalid level", level: "INVALID"},
		{name: "empty level", level: ""},
		{name: "lowercase valid level", level: "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.level == "debug" {
				// Lowercase should be accepted
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_InvalidQueryDefaults(t *testing.T) {
	tests := []struct {
		name          string
		topK          int
		window        int
		expectedError string
	}{
		{name: "zero top k", topK: 0, window: 50, expectedError: "DEFAULT_TOP_K"},
		{name: "negative top k", topK: -1, window: 50, expectedError: "DEFAULT_TOP_K"},
		{name: "zero window", topK: 10, window: 0, expectedError: "TREND_WINDOW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.DefaultTopK = tt.topK
			cfg.TrendWindow = tt.window

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{LogLevel: "INVALID"}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DATA_PATH cannot be empty")
	assert.Contains(t, errStr, "DATA_FORMAT")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "DEFAULT_TOP_K")
	assert.Contains(t, errStr, "TREND_WINDOW")
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, config.FormatCSV, config.FormatFromPath("chess_games_raw.csv"))
	assert.Equal(t, config.FormatPGN, config.FormatFromPath("lichess.PGN"))
	assert.Equal(t, config.FormatSQLite, config.FormatFromPath("games.db"))
	assert.Equal(t, config.FormatCSV, config.FormatFromPath("games"))
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DATA_PATH", "archive.pgn")
	t.Setenv("DATA_FORMAT", "")
	t.Setenv("TREND_WINDOW", "25")
	t.Setenv("DEFAULT_TOP_K", "not-a-number")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "archive.pgn", cfg.DataPath)
	assert.Equal(t, config.FormatPGN, cfg.DataFormat)
	assert.Equal(t, 25, cfg.TrendWindow)
	assert.Equal(t, 10, cfg.DefaultTopK)
	assert.False(t, cfg.MetricsEnabled)
}
