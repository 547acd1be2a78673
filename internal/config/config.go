package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vytor/chessdash/internal/logger"
)

// Supported record source formats.
const (
	FormatCSV    = "csv"
	FormatPGN    = "pgn"
	FormatSQLite = "sqlite"
)

type Config struct {
	Addr           string
	DataPath       string
	DataFormat     string
	LogLevel       string
	DefaultTopK    int
	TrendWindow    int
	MetricsEnabled bool
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	cfg := Config{
		Addr:           envOr("ADDR", ":8080"),
		DataPath:       envOr("DATA_PATH", "chess_games_raw.csv"),
		DataFormat:     strings.ToLower(envOr("DATA_FORMAT", "")),
		LogLevel:       envOr("LOG_LEVEL", "INFO"),
		DefaultTopK:    envIntOr("DEFAULT_TOP_K", 10),
		TrendWindow:    envIntOr("TREND_WINDOW", 50),
		MetricsEnabled: envBoolOr("METRICS_ENABLED", true),
	}
	if cfg.DataFormat == "" {
		cfg.DataFormat = FormatFromPath(cfg.DataPath)
	}
	return cfg
}

// FormatFromPath infers the source format from a file extension, defaulting to csv.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pgn":
		return FormatPGN
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DataPath == "" {
		errs = append(errs, errors.New("DATA_PATH cannot be empty"))
	}
	switch c.DataFormat {
	case FormatCSV, FormatPGN, FormatSQLite:
	default:
		errs = append(errs, fmt.Errorf("DATA_FORMAT must be one of csv, pgn, sqlite (got %q)", c.DataFormat))
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.DefaultTopK < 1 {
		errs = append(errs, fmt.Errorf("DEFAULT_TOP_K must be at least 1 (got %d)", c.DefaultTopK))
	}
	if c.TrendWindow < 1 {
		errs = append(errs, fmt.Errorf("TREND_WINDOW must be at least 1 (got %d)", c.TrendWindow))
	}
	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
