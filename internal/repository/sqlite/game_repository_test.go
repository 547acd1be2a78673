package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/chessdash/internal/records"
	"github.com/vytor/chessdash/internal/repository"
	"github.com/vytor/chessdash/internal/repository/sqlite"
	"github.com/vytor/chessdash/internal/testutil"
)

type GameRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.GameRepository
}

func (s *GameRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewGameRepository(s.db)
}

func (s *GameRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *GameRepositorySuite) TestInsertRows_RoundTripsThroughSource() {
	ctx := context.Background()

	n, err := s.repo.InsertRows(ctx, testutil.MixedGames())
	s.Require().NoError(err)
	s.Assert().Equal(8, n)

	store, err := records.Load(ctx, records.NewSQLiteSource("test.db", s.db))
	s.Require().NoError(err)
	s.Assert().Equal(testutil.MixedGamesStore().All(), store.All())
	s.Assert().Equal(1, store.Malformed())
}

func (s *GameRepositorySuite) TestInsertRows_StoresBracket() {
	ctx := context.Background()

	_, err := s.repo.InsertRows(ctx, testutil.ThreeGames())
	s.Require().NoError(err)

	var brackets []string
	rows, err := s.db.QueryContext(ctx, `SELECT elo_bracket FROM games ORDER BY id`)
	s.Require().NoError(err)
	defer rows.Close()
	for rows.Next() {
		var b string
		s.Require().NoError(rows.Scan(&b))
		brackets = append(brackets, b)
	}
	s.Require().NoError(rows.Err())
	s.Assert().Equal([]string{"Intermediate", "Intermediate", "Advanced"}, brackets)
}

func (s *GameRepositorySuite) TestInsertRows_Empty() {
	n, err := s.repo.InsertRows(context.Background(), nil)
	s.Require().NoError(err)
	s.Assert().Zero(n)
}

func (s *GameRepositorySuite) TestInsertRows_SpansBatches() {
	ctx := context.Background()

	rows := make([]records.Row, 1203)
	for i := range rows {
		rows[i] = records.Row{
			White: fmt.Sprintf("w%d", i), Black: "b", Result: "1-0", Opening: "Sicilian",
			AverageElo: 1000 + i, MoveCount: i % 90, TimeControl: "60+0",
		}
	}
	n, err := s.repo.InsertRows(ctx, rows)
	s.Require().NoError(err)
	s.Assert().Equal(len(rows), n)

	count, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(len(rows), count)

	store, err := records.Load(ctx, records.NewSQLiteSource("test.db", s.db))
	s.Require().NoError(err)
	all := store.All()
	s.Assert().Equal("w0", all[0].White)
	s.Assert().Equal("w1202", all[1202].White)
	s.Assert().Equal(1203, all[1202].GameNumber)
}

func (s *GameRepositorySuite) TestInsertRows_CancelledContextWritesNothing() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.repo.InsertRows(ctx, testutil.ThreeGames())
	s.Require().Error(err)

	count, err := s.repo.Count(context.Background())
	s.Require().NoError(err)
	s.Assert().Zero(count)
}

func (s *GameRepositorySuite) TestDeleteAll() {
	ctx := context.Background()

	_, err := s.repo.InsertRows(ctx, testutil.ThreeGames())
	s.Require().NoError(err)

	n, err := s.repo.DeleteAll(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(3, n)

	count, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Assert().Zero(count)
}

func (s *GameRepositorySuite) TestReplaceRows() {
	ctx := context.Background()

	_, err := s.repo.InsertRows(ctx, testutil.MixedGames())
	s.Require().NoError(err)

	deleted, inserted, err := s.repo.ReplaceRows(ctx, testutil.ThreeGames())
	s.Require().NoError(err)
	s.Assert().Equal(8, deleted)
	s.Assert().Equal(3, inserted)

	store, err := records.Load(ctx, records.NewSQLiteSource("test.db", s.db))
	s.Require().NoError(err)
	s.Assert().Equal(testutil.ThreeGamesStore().All(), store.All())
}

func (s *GameRepositorySuite) TestReplaceRows_FailureKeepsExistingGames() {
	ctx := context.Background()

	_, err := s.repo.InsertRows(ctx, testutil.ThreeGames())
	s.Require().NoError(err)

	_, err = s.db.ExecContext(ctx, `CREATE TRIGGER reject_zed BEFORE INSERT ON games
WHEN NEW.white = 'zed' BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	s.Require().NoError(err)

	rows := append(testutil.MixedGames(), records.Row{White: "zed", Black: "B", Result: "1-0", AverageElo: 1500})
	_, _, err = s.repo.ReplaceRows(ctx, rows)
	s.Require().Error(err)

	count, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(3, count)
}

func TestGameRepositorySuite(t *testing.T) {
	suite.Run(t, new(GameRepositorySuite))
}
