// Package records holds the immutable in-memory set of games every query reads.
package records

import (
	"context"
	stderrors "errors"
	"iter"
	"slices"
	"time"

	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/logger"
	"github.com/vytor/chessdash/internal/models"
)

// Row is one game as read from a source, before derived columns are assigned.
type Row struct {
	White       string
	Black       string
	Result      string
	Opening     string
	AverageElo  int
	MoveCount   int
	TimeControl string
}

// Source supplies rows in a stable order. Rows may be called more than once.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([]Row, error)
}

// Store owns the ordered game sequence. It is never mutated after construction,
// so any number of goroutines may read it without locking.
type Store struct {
	source    string
	games     []models.GameRecord
	malformed int
}

// Load reads every row of src and derives GameNumber (1..N in source order)
// and EloBracket. Any failure is reported as a *errors.LoadError.
func Load(ctx context.Context, src Source) (*Store, error) {
	log := logger.FromContext(ctx).WithPrefix("records").WithField("source", src.Name())
	start := time.Now()

	rows, err := src.Rows(ctx)
	if err != nil {
		var loadErr *errors.LoadError
		if !stderrors.As(err, &loadErr) {
			err = &errors.LoadError{Source: src.Name(), Err: err}
		}
		log.Error("failed to load records: %v", err)
		return nil, err
	}

	s := FromRows(src.Name(), rows)
	if s.malformed > 0 {
		log.Warn("%d of %d records have an unrecognized result and are excluded from rate queries", s.malformed, len(s.games))
	}
	log.Info("loaded %d records in %v", len(s.games), time.Since(start))
	return s, nil
}

// FromRows builds a store directly from rows already in memory.
func FromRows(name string, rows []Row) *Store {
	s := &Store{
		source: name,
		games:  make([]models.GameRecord, 0, len(rows)),
	}
	for i, r := range rows {
		g := models.NewGameRecord(i+1, r.White, r.Black, r.Result, r.Opening, r.AverageElo, r.MoveCount, r.TimeControl)
		if !g.Result.Valid() {
			s.malformed++
		}
		s.games = append(s.games, g)
	}
	return s
}

// Source names where the records came from.
func (s *Store) Source() string { return s.source }

// Len is the number of loaded games.
func (s *Store) Len() int { return len(s.games) }

// Malformed counts records whose result token was not recognized.
func (s *Store) Malformed() int { return s.malformed }

// All returns a copy of every record in load order.
func (s *Store) All() []models.GameRecord {
	return slices.Clone(s.games)
}

// Records iterates the records in load order without copying the backing slice.
func (s *Store) Records() iter.Seq[models.GameRecord] {
	return func(yield func(models.GameRecord) bool) {
		for _, g := range s.games {
			if !yield(g) {
				return
			}
		}
	}
}

// DistinctValues lists each distinct value of field once, in first-seen order.
// FieldPlayer yields the union of white and black identifiers.
func (s *Store) DistinctValues(field models.Field) ([]string, error) {
	if field == "" {
		return nil, errors.NewInvalidParameter("field", "must not be empty")
	}
	seen := make(map[string]struct{})
	var out []string
	add := func(v string) {
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, g := range s.games {
		if field == models.FieldPlayer {
			add(g.White)
			add(g.Black)
			continue
		}
		add(field.Label(g))
	}
	return out, nil
}
