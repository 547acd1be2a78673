package logger_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/chessdash/internal/logger"
)

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Info("store loaded")
	assert.Empty(t, buf.String())

	log.Warn("skipped %d records", 2)
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "skipped 2 records")
}

func TestLogger_FieldsAreSortedAndIsolated(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	derived := base.WithFields(map[string]any{"window": 50, "field": "AverageElo"}).WithPrefix("query")

	derived.Info("trend")
	line := buf.String()
	assert.Contains(t, line, "[query]")
	assert.Contains(t, line, "field=AverageElo window=50")

	buf.Reset()
	base.Info("plain")
	assert.NotContains(t, buf.String(), "window=")
}

func TestLookupLevel(t *testing.T) {
	tests := []struct {
		in    string
		level logger.Level
		ok    bool
	}{
		{"debug", logger.DEBUG, true},
		{"INFO", logger.INFO, true},
		{"warning", logger.WARN, true},
		{" ERROR ", logger.ERROR, true},
		{"verbose", logger.INFO, false},
		{"", logger.INFO, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, ok := logger.LookupLevel(tt.in)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.level, logger.ParseLevel(tt.in))
		})
	}
}

func TestFromContext(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, logger.Default(), logger.FromContext(ctx))

	custom := logger.New(logger.WithPrefix("req"))
	assert.Same(t, custom, logger.FromContext(logger.NewContext(ctx, custom)))
}

func TestLogger_QuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false))

	log.WithFields(map[string]any{"opening": "Sicilian Defense", "window": 50, "player": ""}).Info("ranked")
	line := buf.String()
	assert.Contains(t, line, `opening="Sicilian Defense"`)
	assert.Contains(t, line, `player=""`)
	assert.Contains(t, line, "window=50")
}

func TestLogger_DerivedLoggersWriteWholeLines(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.WithOutput(&buf), logger.WithColors(false))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			log := base.WithField("worker_id", id)
			for j := 0; j < 50; j++ {
				log.Info("job %d done", j)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 400)
	for _, line := range lines {
		assert.Regexp(t, `job \d+ done worker_id=\d$`, line)
	}
}

func TestLogger_ReportsCaller(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.Default()
	t.Cleanup(func() { logger.SetDefault(prev) })

	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	log.Info("direct")
	logger.SetDefault(log)
	logger.Warn("package level %s", fmt.Sprint(1))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, "[logger_test.go:")
	}
}
