package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/chessdash/internal/logger"
	"github.com/vytor/chessdash/internal/models"
	"github.com/vytor/chessdash/internal/records"
	"github.com/vytor/chessdash/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// insertBatchSize keeps each multi-row INSERT well under SQLite's bound
// parameter limit.
const insertBatchSize = 500

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type gameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new GameRepository implementation
func NewGameRepository(db *sql.DB) repository.GameRepository {
	return &gameRepository{db: db}
}

// InsertRows appends rows in order inside one transaction, so the ids the
// sqlite source orders by preserve the input order.
func (r *gameRepository) InsertRows(ctx context.Context, rows []records.Row) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	if len(rows) == 0 {
		log.Debug("no rows to insert")
		return 0, nil
	}
	log.Debug("inserting %d rows", len(rows))

	var inserted int
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		inserted, err = insertRows(ctx, log, tx, rows)
		return err
	})
	if err != nil {
		return 0, err
	}
	log.Info("inserted %d rows", inserted)
	return inserted, nil
}

func (r *gameRepository) ReplaceRows(ctx context.Context, rows []records.Row) (int, int, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("replacing games with %d rows", len(rows))

	var deleted, inserted int
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		if deleted, err = deleteAll(ctx, log, tx); err != nil {
			return err
		}
		inserted, err = insertRows(ctx, log, tx, rows)
		return err
	})
	if err != nil {
		return 0, 0, err
	}
	log.Info("replaced %d games with %d rows", deleted, inserted)
	return deleted, inserted, nil
}

func (r *gameRepository) Count(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	query, args, err := sqlBuilder.Select("COUNT(*)").From("games").ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count games: %v", err)
		return 0, err
	}
	log.Debug("games count: %d", count)
	return count, nil
}

func (r *gameRepository) DeleteAll(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	n, err := deleteAll(ctx, log, r.db)
	if err != nil {
		return 0, err
	}
	log.Info("deleted %d games", n)
	return n, nil
}

func insertRows(ctx context.Context, log *logger.Logger, db execer, rows []records.Row) (int, error) {
	inserted := 0
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))

		insert := sqlBuilder.Insert("games").Columns(
			"white", "black", "result", "opening", "average_elo", "move_count", "time_control", "elo_bracket",
		)
		for _, row := range rows[start:end] {
			insert = insert.Values(
				row.White, row.Black, row.Result, row.Opening,
				row.AverageElo, row.MoveCount, row.TimeControl,
				string(models.BracketFor(row.AverageElo)),
			)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			log.Error("failed to build insert: %v", err)
			return 0, err
		}
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			log.Error("failed to insert rows %d-%d: %v", start+1, end, err)
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}
	return inserted, nil
}

func deleteAll(ctx context.Context, log *logger.Logger, db execer) (int, error) {
	query, args, err := sqlBuilder.Delete("games").ToSql()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete games: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
