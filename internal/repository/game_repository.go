package repository

import (
	"context"

	"github.com/vytor/chessdash/internal/records"
)

// GameRepository persists game rows into the games table that the sqlite
// data format reads back.
type GameRepository interface {
	InsertRows(ctx context.Context, rows []records.Row) (int, error)
	// ReplaceRows swaps the table contents for rows in one transaction and
	// reports how many games were removed and inserted.
	ReplaceRows(ctx context.Context, rows []records.Row) (deleted, inserted int, err error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int, error)
}
