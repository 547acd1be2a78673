package chesscom_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessdash/internal/chesscom"
	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/models"
	"github.com/vytor/chessdash/internal/records"
	"github.com/vytor/chessdash/internal/testutil/mocks"
)

const sicilianPGN = `[Event "Live Chess"]
[White "Alice"]
[Black "bob"]
[Result "1-0"]
[Opening "Sicilian Defense"]

1. e4 c5 2. Nf3 d6 1-0
`

const frenchPGN = `[Event "Live Chess"]
[White "bob"]
[Black "Alice"]
[Result "1/2-1/2"]

1. e4 e6 2. d4 d5 1/2-1/2
`

type archiveServer struct {
	*httptest.Server
	monthlyHits atomic.Int32
}

func newArchiveServer(t *testing.T) *archiveServer {
	t.Helper()
	s := &archiveServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/player/alice/games/archives", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"archives": []string{
			s.URL + "/player/alice/games/2024/01",
			s.URL + "/player/alice/games/2024/02",
		}})
	})
	mux.HandleFunc("/player/alice/games/2024/01", func(w http.ResponseWriter, r *http.Request) {
		s.monthlyHits.Add(1)
		writeJSON(t, w, map[string]any{"games": []chesscom.MonthlyGame{
			{
				URL: "https://www.chess.com/game/live/1", PGN: sicilianPGN, TimeControl: "600", Rules: "chess",
				White: chesscom.Player{Username: "Alice", Rating: 1500, Result: "win"},
				Black: chesscom.Player{Username: "bob", Rating: 1601, Result: "resigned"},
			},
			{
				URL: "https://www.chess.com/game/live/2", PGN: sicilianPGN, TimeControl: "600", Rules: "chess960",
				White: chesscom.Player{Username: "Alice", Rating: 1500, Result: "win"},
				Black: chesscom.Player{Username: "bob", Rating: 1600, Result: "checkmated"},
			},
		}})
	})
	mux.HandleFunc("/player/alice/games/2024/02", func(w http.ResponseWriter, r *http.Request) {
		s.monthlyHits.Add(1)
		writeJSON(t, w, map[string]any{"games": []chesscom.MonthlyGame{
			{
				URL: "https://www.chess.com/game/live/3", PGN: frenchPGN, TimeControl: "180+2", Rules: "chess",
				White: chesscom.Player{Username: "bob", Rating: 2000, Result: "repetition"},
				Black: chesscom.Player{Username: "Alice", Rating: 2100, Result: "repetition"},
			},
		}})
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestArchiveSource_Rows(t *testing.T) {
	srv := newArchiveServer(t)
	client := chesscom.NewWithBaseURL(srv.URL, srv.Client())

	store, err := records.Load(context.Background(), chesscom.NewArchiveSource(client, "Alice", 0))
	require.NoError(t, err)

	all := store.All()
	require.Len(t, all, 2, "the chess960 game is skipped")

	assert.Equal(t, "Alice", all[0].White)
	assert.Equal(t, models.WhiteWin, all[0].Result)
	assert.Equal(t, "Sicilian Defense", all[0].Opening)
	assert.Equal(t, 1551, all[0].AverageElo)
	assert.Equal(t, 4, all[0].MoveCount)
	assert.Equal(t, "600", all[0].TimeControl)

	assert.Equal(t, models.Draw, all[1].Result)
	assert.Contains(t, all[1].Opening, "French")
	assert.Equal(t, 2050, all[1].AverageElo)
	assert.Equal(t, 2, all[1].GameNumber)
}

func TestArchiveSource_MonthsLimit(t *testing.T) {
	srv := newArchiveServer(t)
	client := chesscom.NewWithBaseURL(srv.URL, srv.Client())

	rows, err := chesscom.NewArchiveSource(client, "alice", 1).Rows(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "bob", rows[0].White)
	assert.Equal(t, int32(1), srv.monthlyHits.Load())
}

func TestArchiveSource_UnknownPlayer(t *testing.T) {
	srv := newArchiveServer(t)
	client := chesscom.NewWithBaseURL(srv.URL, srv.Client())

	_, err := chesscom.NewArchiveSource(client, "nobody", 0).Rows(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrLoad)
	assert.Contains(t, err.Error(), "404")
}

func TestArchiveSource_MonthlyFailure(t *testing.T) {
	client := new(mocks.MockChessClient)
	client.On("FetchArchives", mock.Anything, "alice").Return([]string{"m1", "m2", "m3"}, nil).Once()
	client.On("FetchMonthly", mock.Anything, "m1").Return([]chesscom.MonthlyGame{}, nil).Once()
	client.On("FetchMonthly", mock.Anything, "m2").Return(nil, stderrors.New("status 429: slow down")).Once()
	client.On("FetchMonthly", mock.Anything, "m3").Return([]chesscom.MonthlyGame{}, nil).Once()

	_, err := chesscom.NewArchiveSource(client, "alice", 0).Rows(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrLoad)
	assert.Contains(t, err.Error(), "429")
	client.AssertExpectations(t)
}

func TestArchiveSource_NoArchives(t *testing.T) {
	client := new(mocks.MockChessClient)
	client.On("FetchArchives", mock.Anything, "newbie").Return([]string{}, nil).Once()

	rows, err := chesscom.NewArchiveSource(client, "newbie", 3).Rows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
	client.AssertNotCalled(t, "FetchMonthly", mock.Anything, mock.Anything)
}

func TestResultToken(t *testing.T) {
	tests := []struct {
		white, black string
		want         string
	}{
		{"win", "checkmated", "1-0"},
		{"timeout", "win", "0-1"},
		{"agreed", "agreed", "1/2-1/2"},
		{"50move", "50move", "1/2-1/2"},
		{"timevsinsufficient", "timevsinsufficient", "1/2-1/2"},
		{"abandoned", "abandoned", "*"},
		{"", "", "*"},
	}
	for _, tt := range tests {
		t.Run(tt.white+"/"+tt.black, func(t *testing.T) {
			mg := chesscom.MonthlyGame{
				White: chesscom.Player{Result: tt.white},
				Black: chesscom.Player{Result: tt.black},
			}
			assert.Equal(t, tt.want, chesscom.ResultToken(mg))
		})
	}
}
