package records

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/pgn"
	"github.com/vytor/chessdash/internal/worker"
)

// PGNSource reads a multi-game PGN archive. AverageElo is the mean of the
// WhiteElo and BlackElo tags and MoveCount is the number of plies replayed.
type PGNSource struct {
	name string
	open func() (io.ReadCloser, error)
}

// PGNFile reads the archive at path each time rows are requested.
func PGNFile(path string) *PGNSource {
	return &PGNSource{
		name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// PGNString reads the archive from an in-memory string.
func PGNString(name, data string) *PGNSource {
	return &PGNSource{
		name: name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(data)), nil },
	}
}

func (s *PGNSource) Name() string { return s.name }

func (s *PGNSource) Rows(ctx context.Context) ([]Row, error) {
	f, err := s.open()
	if err != nil {
		return nil, &errors.LoadError{Source: s.name, Err: err}
	}
	defer f.Close()

	texts, err := pgn.SplitGames(f)
	if err != nil {
		return nil, &errors.LoadError{Source: s.name, Err: err}
	}
	if len(texts) == 0 {
		return nil, nil
	}

	// Replaying moves dominates load time, so games are parsed in parallel
	// into fixed slots and then reported in archive order.
	rows := make([]Row, len(texts))
	errs := make([]error, len(texts))
	pool := worker.NewPool(runtime.GOMAXPROCS(0), len(texts))
	pool.Start(ctx)
	for i, text := range texts {
		pool.Submit(ctx, pgnJob{source: s.name, index: i, text: text, row: &rows[i], err: &errs[i]})
	}
	pool.Drain()

	if ctx.Err() != nil {
		return nil, &errors.LoadError{Source: s.name, Err: ctx.Err()}
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

type pgnJob struct {
	source string
	index  int
	text   string
	row    *Row
	err    *error
}

func (j pgnJob) Name() string { return fmt.Sprintf("pgn game %d", j.index+1) }

func (j pgnJob) Run(context.Context) error {
	*j.row, *j.err = parsePGNRow(j.source, j.index+1, j.text)
	return *j.err
}

func parsePGNRow(source string, n int, text string) (Row, error) {
	game, err := pgn.ReadGame(text)
	if err != nil {
		return Row{}, &errors.LoadError{Source: source, Row: n, Err: err}
	}
	for _, tag := range []string{ColWhite, ColBlack, ColResult} {
		if game.Headers[tag] == "" {
			return Row{}, &errors.LoadError{Source: source, Row: n, Column: tag, Err: fmt.Errorf("required tag missing")}
		}
	}
	elo, err := averageElo(game.Headers["WhiteElo"], game.Headers["BlackElo"])
	if err != nil {
		return Row{}, &errors.LoadError{Source: source, Row: n, Column: ColAverageElo, Err: err}
	}
	return Row{
		White:       game.Headers[ColWhite],
		Black:       game.Headers[ColBlack],
		Result:      game.Headers[ColResult],
		Opening:     game.Opening,
		AverageElo:  elo,
		MoveCount:   game.Plies,
		TimeControl: game.Headers[ColTimeControl],
	}, nil
}

// averageElo averages the two ratings, using the single known rating when
// the other is absent or "?".
func averageElo(white, black string) (int, error) {
	known := func(v string) bool { return v != "" && v != "?" && v != "-" }
	switch {
	case known(white) && known(black):
		w, err := parseElo(white)
		if err != nil {
			return 0, fmt.Errorf("WhiteElo: %w", err)
		}
		b, err := parseElo(black)
		if err != nil {
			return 0, fmt.Errorf("BlackElo: %w", err)
		}
		return int((int64(w) + int64(b) + 1) / 2), nil
	case known(white):
		return parseElo(white)
	case known(black):
		return parseElo(black)
	default:
		return 0, fmt.Errorf("neither WhiteElo nor BlackElo is set")
	}
}
