package records_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/chessdash/internal/models"
	"github.com/vytor/chessdash/internal/records"
	"github.com/vytor/chessdash/internal/testutil"
)

type SQLiteSourceSuite struct {
	suite.Suite
	db *sql.DB
}

func (s *SQLiteSourceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
}

func (s *SQLiteSourceSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SQLiteSourceSuite) TestLoadInInsertionOrder() {
	testutil.InsertRows(s.T(), s.db, testutil.ThreeGames())

	store, err := records.Load(context.Background(), records.NewSQLiteSource("test.db", s.db))
	s.Require().NoError(err)

	all := store.All()
	s.Require().Len(all, 3)
	s.Assert().Equal("A", all[0].White)
	s.Assert().Equal("B", all[1].White)
	s.Assert().Equal("French", all[2].Opening)
	s.Assert().Equal(models.Draw, all[2].Result)
	s.Assert().Equal(models.Advanced, all[2].EloBracket)
	s.Assert().Equal(3, all[2].GameNumber)
}

func (s *SQLiteSourceSuite) TestEmptyTable() {
	store, err := records.Load(context.Background(), records.NewSQLiteSource("test.db", s.db))
	s.Require().NoError(err)
	s.Assert().Equal(0, store.Len())
}

func (s *SQLiteSourceSuite) TestMissingTableIsLoadError() {
	_, err := s.db.Exec(`DROP TABLE games`)
	s.Require().NoError(err)

	_, err = records.Load(context.Background(), records.NewSQLiteSource("test.db", s.db))
	s.Assert().Error(err)
}

func TestSQLiteSourceSuite(t *testing.T) {
	suite.Run(t, new(SQLiteSourceSuite))
}
