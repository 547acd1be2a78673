package chesscom

import (
	"context"
	"fmt"
	"math"

	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/logger"
	"github.com/vytor/chessdash/internal/pgn"
	"github.com/vytor/chessdash/internal/records"
	"github.com/vytor/chessdash/internal/worker"
)

// fetchWorkers bounds concurrent archive requests; chess.com throttles
// clients that fan out.
const fetchWorkers = 2

// ArchiveSource reads a player's standard-chess games from their monthly
// archives. Months bounds how many of the most recent archives are read;
// zero reads all of them.
type ArchiveSource struct {
	client   ClientInterface
	username string
	months   int
}

func NewArchiveSource(client ClientInterface, username string, months int) *ArchiveSource {
	return &ArchiveSource{client: client, username: username, months: months}
}

func (s *ArchiveSource) Name() string { return "chess.com/" + s.username }

// Rows returns games oldest first. Variant games are skipped.
func (s *ArchiveSource) Rows(ctx context.Context) ([]records.Row, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("username", s.username)

	archives, err := s.client.FetchArchives(ctx, s.username)
	if err != nil {
		return nil, &errors.LoadError{Source: s.Name(), Err: err}
	}
	if s.months > 0 && len(archives) > s.months {
		archives = archives[len(archives)-s.months:]
	}
	if len(archives) == 0 {
		log.Warn("player has no archived games")
		return nil, nil
	}

	monthly := make([][]MonthlyGame, len(archives))
	errs := make([]error, len(archives))
	pool := worker.NewPool(fetchWorkers, len(archives))
	pool.Start(ctx)
	for i, url := range archives {
		pool.Submit(ctx, fetchJob{client: s.client, url: url, games: &monthly[i], err: &errs[i]})
	}
	pool.Drain()

	if ctx.Err() != nil {
		return nil, &errors.LoadError{Source: s.Name(), Err: ctx.Err()}
	}
	for _, err := range errs {
		if err != nil {
			return nil, &errors.LoadError{Source: s.Name(), Err: err}
		}
	}

	var (
		rows    []records.Row
		skipped int
	)
	for _, games := range monthly {
		for _, mg := range games {
			if mg.Rules != "" && mg.Rules != "chess" {
				skipped++
				continue
			}
			row, err := toRow(mg)
			if err != nil {
				return nil, &errors.LoadError{Source: s.Name(), Row: len(rows) + skipped + 1, Err: fmt.Errorf("%s: %w", mg.URL, err)}
			}
			rows = append(rows, row)
		}
	}
	if skipped > 0 {
		log.Info("skipped %d variant games", skipped)
	}
	log.Info("read %d games from %d archives", len(rows), len(archives))
	return rows, nil
}

type fetchJob struct {
	client ClientInterface
	url    string
	games  *[]MonthlyGame
	err    *error
}

func (j fetchJob) Name() string { return "fetch " + j.url }

func (j fetchJob) Run(ctx context.Context) error {
	*j.games, *j.err = j.client.FetchMonthly(ctx, j.url)
	return *j.err
}

// toRow replays the game's PGN to count plies and classify the opening; the
// players, ratings and result come from the archive metadata.
func toRow(mg MonthlyGame) (records.Row, error) {
	game, err := pgn.ReadGame(mg.PGN)
	if err != nil {
		return records.Row{}, err
	}
	return records.Row{
		White:       mg.White.Username,
		Black:       mg.Black.Username,
		Result:      ResultToken(mg),
		Opening:     game.Opening,
		AverageElo:  int(math.Round(float64(mg.White.Rating+mg.Black.Rating) / 2)),
		MoveCount:   game.Plies,
		TimeControl: mg.TimeControl,
	}, nil
}
