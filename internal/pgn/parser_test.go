package pgn_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessdash/internal/pgn"
)

const twoGames = `[Event "Rated Blitz game"]
[White "alice"]
[Black "bob"]
[Result "1-0"]
[WhiteElo "1500"]
[BlackElo "1600"]
[TimeControl "300+0"]
[Opening "Sicilian Defense"]

1. e4 c5 2. Nf3 d6 1-0

[Event "Rated Rapid game"]
[White "bob"]
[Black "carol"]
[Result "1/2-1/2"]
[WhiteElo "2000"]
[BlackElo "2100"]
[TimeControl "600+5"]

1. e4 e6 2. d4 d5 1/2-1/2
`

func TestParsePGNHeaders_ValidHeaders(t *testing.T) {
	pgnText := `[Event "Live Chess"]
[Site "Chess.com"]
[White "Player1"]
[Black "Player2"]
[Result "1-0"]
[WhiteElo "1500"]
[BlackElo "1600"]
[TimeControl "600+0"]
[ECO "B20"]
[Opening "Sicilian Defense"]

1. e4 c5 2. Nf3 d6`

	headers := pgn.ParsePGNHeaders(pgnText)

	assert.Equal(t, "Live Chess", headers["Event"])
	assert.Equal(t, "Player1", headers["White"])
	assert.Equal(t, "Player2", headers["Black"])
	assert.Equal(t, "1-0", headers["Result"])
	assert.Equal(t, "1500", headers["WhiteElo"])
	assert.Equal(t, "600+0", headers["TimeControl"])
	assert.Equal(t, "Sicilian Defense", headers["Opening"])
}

func TestParsePGNHeaders_EmptyPGN(t *testing.T) {
	assert.Empty(t, pgn.ParsePGNHeaders(""))
}

func TestParsePGNHeaders_MalformedHeaders(t *testing.T) {
	pgnText := `[Event Live Chess]
[Invalid header]
1. e4 e5`

	headers := pgn.ParsePGNHeaders(pgnText)
	assert.Empty(t, headers, "malformed headers should be ignored")
}

func TestSplitGames(t *testing.T) {
	games, err := pgn.SplitGames(strings.NewReader(twoGames))
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "alice", pgn.ParsePGNHeaders(games[0])["White"])
	assert.Equal(t, "carol", pgn.ParsePGNHeaders(games[1])["Black"])
}

func TestSplitGames_Empty(t *testing.T) {
	games, err := pgn.SplitGames(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestReadGame(t *testing.T) {
	games, err := pgn.SplitGames(strings.NewReader(twoGames))
	require.NoError(t, err)

	first, err := pgn.ReadGame(games[0])
	require.NoError(t, err)
	assert.Equal(t, 4, first.Plies)
	assert.Equal(t, "Sicilian Defense", first.Opening)

	second, err := pgn.ReadGame(games[1])
	require.NoError(t, err)
	assert.Equal(t, 4, second.Plies)
	assert.NotEmpty(t, second.Opening, "opening should come from the ECO book when the tag is missing")
	assert.Contains(t, second.Opening, "French")
}
