package records_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/models"
	"github.com/vytor/chessdash/internal/records"
)

const archive = `[Event "Casual"]
[White "A"]
[Black "B"]
[Result "1-0"]
[WhiteElo "1500"]
[BlackElo "1601"]
[TimeControl "600+5"]
[Opening "Sicilian Defense"]

1. e4 c5 2. Nf3 d6 3. d4 1-0

[Event "Casual"]
[White "B"]
[Black "C"]
[Result "0-1"]
[WhiteElo "2450"]
[BlackElo "?"]
[TimeControl "60+0"]
[Opening "French Defense"]

1. e4 e6 0-1
`

func TestLoad_PGN(t *testing.T) {
	store, err := records.Load(context.Background(), records.PGNString("games.pgn", archive))
	require.NoError(t, err)

	all := store.All()
	require.Len(t, all, 2)

	assert.Equal(t, "A", all[0].White)
	assert.Equal(t, models.WhiteWin, all[0].Result)
	assert.Equal(t, 1551, all[0].AverageElo)
	assert.Equal(t, 5, all[0].MoveCount)
	assert.Equal(t, "Sicilian Defense", all[0].Opening)
	assert.Equal(t, "600+5", all[0].TimeControl)

	assert.Equal(t, 2450, all[1].AverageElo, "single known rating is used as is")
	assert.Equal(t, models.Expert, all[1].EloBracket)
	assert.Equal(t, 2, all[1].GameNumber)
}

func TestLoad_PGNMissingRatings(t *testing.T) {
	data := `[White "A"]
[Black "B"]
[Result "1-0"]

1. e4 1-0
`
	_, err := records.Load(context.Background(), records.PGNString("norating.pgn", data))

	var loadErr *errors.LoadError
	require.True(t, stderrors.As(err, &loadErr))
	assert.Equal(t, 1, loadErr.Row)
	assert.Equal(t, records.ColAverageElo, loadErr.Column)
}

func manyGames(n int, broken ...int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		elo := fmt.Sprintf("[WhiteElo \"%d\"]\n", 1000+i)
		if slices.Contains(broken, i) {
			elo = "[WhiteElo \"strong\"]\n"
		}
		fmt.Fprintf(&b, "[White \"p%d\"]\n[Black \"q\"]\n[Result \"1-0\"]\n%s\n1. e4 e5 1-0\n\n", i, elo)
	}
	return b.String()
}

func TestLoad_PGNKeepsArchiveOrder(t *testing.T) {
	store, err := records.Load(context.Background(), records.PGNString("many.pgn", manyGames(64)))
	require.NoError(t, err)

	all := store.All()
	require.Len(t, all, 64)
	for i, g := range all {
		assert.Equal(t, fmt.Sprintf("p%d", i+1), g.White)
		assert.Equal(t, 1000+i+1, g.AverageElo)
		assert.Equal(t, i+1, g.GameNumber)
		assert.Equal(t, 2, g.MoveCount)
	}
}

func TestLoad_PGNReportsFirstBrokenGame(t *testing.T) {
	_, err := records.Load(context.Background(), records.PGNString("many.pgn", manyGames(40, 31, 12)))

	var loadErr *errors.LoadError
	require.True(t, stderrors.As(err, &loadErr))
	assert.Equal(t, 12, loadErr.Row)
	assert.Equal(t, records.ColAverageElo, loadErr.Column)
}

func TestLoad_PGNCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := records.Load(ctx, records.PGNString("many.pgn", manyGames(8)))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
