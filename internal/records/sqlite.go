package records

import (
	"context"
	"database/sql"
	"math"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/logger"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// SQLiteSource reads the games table in insertion order.
type SQLiteSource struct {
	name string
	db   *sql.DB
}

// NewSQLiteSource reads from db; name identifies the database in logs and errors.
func NewSQLiteSource(name string, db *sql.DB) *SQLiteSource {
	return &SQLiteSource{name: name, db: db}
}

func (s *SQLiteSource) Name() string { return s.name }

func (s *SQLiteSource) Rows(ctx context.Context) ([]Row, error) {
	log := logger.FromContext(ctx).WithPrefix("sqlite_source")

	query, args, err := sqlBuilder.Select(
		"white", "black", "result", "opening", "average_elo", "move_count", "time_control",
	).From("games").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, &errors.LoadError{Source: s.name, Err: err}
	}
	log.Debug("query: %s", query)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &errors.LoadError{Source: s.name, Err: err}
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r   Row
			elo float64
		)
		if err := rows.Scan(&r.White, &r.Black, &r.Result, &r.Opening, &elo, &r.MoveCount, &r.TimeControl); err != nil {
			return nil, &errors.LoadError{Source: s.name, Row: len(out) + 1, Err: err}
		}
		if r.MoveCount < 0 {
			return nil, &errors.LoadError{Source: s.name, Row: len(out) + 1, Column: ColMoveCount, Err: errNegativeMoves}
		}
		r.AverageElo = int(math.Round(elo))
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &errors.LoadError{Source: s.name, Err: err}
	}
	return out, nil
}
