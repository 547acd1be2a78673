package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/logger"
	"github.com/vytor/chessdash/internal/records"
	"github.com/vytor/chessdash/internal/repository"
)

// ImportResult describes one completed import.
type ImportResult struct {
	Source    string
	Read      int
	Inserted  int
	Deleted   int
	Malformed int
	Total     int
	Duration  time.Duration
}

// ImportService copies games from any record source into the games table so
// the server can later load them with the sqlite data format.
type ImportService interface {
	Import(ctx context.Context, src records.Source, replace bool) (ImportResult, error)
}

type importService struct {
	games repository.GameRepository
}

// NewImportService creates a new ImportService
func NewImportService(games repository.GameRepository) ImportService {
	return &importService{games: games}
}

// Import reads every row of src before touching the table, so a source that
// fails to load leaves existing games in place. With replace set the previous
// contents are swapped out in the same transaction.
func (s *importService) Import(ctx context.Context, src records.Source, replace bool) (ImportResult, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"source":  src.Name(),
		"replace": replace,
	})
	log.Info("importing games")
	start := time.Now()
	result := ImportResult{Source: src.Name()}

	rows, err := src.Rows(ctx)
	if err != nil {
		var loadErr *errors.LoadError
		if !stderrors.As(err, &loadErr) {
			err = &errors.LoadError{Source: src.Name(), Err: err}
		}
		log.Error("failed to read source: %v", err)
		return result, err
	}
	result.Read = len(rows)
	result.Malformed = records.FromRows(src.Name(), rows).Malformed()
	if result.Malformed > 0 {
		log.Warn("%d of %d games have an unrecognized result; they are imported but excluded from rate queries", result.Malformed, result.Read)
	}

	if replace {
		result.Deleted, result.Inserted, err = s.games.ReplaceRows(ctx, rows)
	} else {
		result.Inserted, err = s.games.InsertRows(ctx, rows)
	}
	if err != nil {
		log.Error("failed to store games: %v", err)
		return result, fmt.Errorf("store games: %w", err)
	}

	total, err := s.games.Count(ctx)
	if err != nil {
		log.Error("failed to count games: %v", err)
		return result, fmt.Errorf("count games: %w", err)
	}
	result.Total = total
	result.Duration = time.Since(start)

	log.Info("import complete: read=%d, inserted=%d, deleted=%d, total=%d, duration=%v",
		result.Read, result.Inserted, result.Deleted, result.Total, result.Duration)
	return result, nil
}
