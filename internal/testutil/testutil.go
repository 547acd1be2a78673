package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessdash/internal/db"
	"github.com/vytor/chessdash/internal/records"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// One connection so every statement sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB))
	return sqlDB
}

// InsertRows writes rows into the games table in order.
func InsertRows(t *testing.T, sqlDB *sql.DB, rows []records.Row) {
	insert := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question).
		Insert("games").
		Columns("white", "black", "result", "opening", "average_elo", "move_count", "time_control")
	for _, r := range rows {
		insert = insert.Values(r.White, r.Black, r.Result, r.Opening, r.AverageElo, r.MoveCount, r.TimeControl)
	}
	query, args, err := insert.ToSql()
	require.NoError(t, err)
	_, err = sqlDB.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// ThreeGames is the canonical small fixture: two Sicilians (one win each way)
// and a drawn French.
func ThreeGames() []records.Row {
	return []records.Row{
		{White: "A", Black: "B", Result: "1-0", Opening: "Sicilian", AverageElo: 1500, MoveCount: 40, TimeControl: "600+5"},
		{White: "B", Black: "A", Result: "0-1", Opening: "Sicilian", AverageElo: 1550, MoveCount: 52, TimeControl: "600+5"},
		{White: "A", Black: "C", Result: "1/2-1/2", Opening: "French", AverageElo: 1900, MoveCount: 61, TimeControl: "180+2"},
	}
}

// ThreeGamesStore wraps ThreeGames in a store.
func ThreeGamesStore() *records.Store {
	return records.FromRows("fixture", ThreeGames())
}

// MixedGames covers every bracket, a repeated pairing and one unrecognized result.
func MixedGames() []records.Row {
	return []records.Row{
		{White: "Magnus", Black: "Hikaru", Result: "1-0", Opening: "Ruy Lopez", AverageElo: 2850, MoveCount: 80, TimeControl: "180+0"},
		{White: "Hikaru", Black: "Magnus", Result: "1/2-1/2", Opening: "Ruy Lopez", AverageElo: 2845, MoveCount: 64, TimeControl: "180+0"},
		{White: "alice", Black: "bob", Result: "0-1", Opening: "Sicilian", AverageElo: 1100, MoveCount: 30, TimeControl: "600+5"},
		{White: "bob", Black: "alice", Result: "1-0", Opening: "French", AverageElo: 1250, MoveCount: 44, TimeControl: "600+5"},
		{White: "Magnus", Black: "alice", Result: "1-0", Opening: "Sicilian", AverageElo: 2000, MoveCount: 25, TimeControl: "60+0"},
		{White: "carol", Black: "Magnus", Result: "*", Opening: "Sicilian", AverageElo: 2300, MoveCount: 12, TimeControl: "60+0"},
		{White: "Hikaru", Black: "carol", Result: "0-1", Opening: "Ruy Lopez", AverageElo: 2500, MoveCount: 70, TimeControl: "180+0"},
		{White: "carol", Black: "Hikaru", Result: "1-0", Opening: "French", AverageElo: 2550, MoveCount: 55, TimeControl: "180+0"},
	}
}

// MixedGamesStore wraps MixedGames in a store.
func MixedGamesStore() *records.Store {
	return records.FromRows("mixed", MixedGames())
}
