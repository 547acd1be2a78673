package query_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/models"
	"github.com/vytor/chessdash/internal/query"
	"github.com/vytor/chessdash/internal/testutil"
)

func TestCrossTabulate_OpeningByTimeControl(t *testing.T) {
	tab, err := query.CrossTabulate(testutil.MixedGamesStore(), models.GameFilter{}, models.FieldOpening, models.FieldTimeControl)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ruy Lopez", "Sicilian", "French"}, tab.Rows)
	assert.Equal(t, []string{"180+0", "600+5", "60+0"}, tab.Cols)
	assert.Equal(t, 3, tab.Count("Ruy Lopez", "180+0"))
	assert.Equal(t, 2, tab.Count("Sicilian", "60+0"))
	assert.Equal(t, 1, tab.Count("French", "180+0"))
	assert.Zero(t, tab.Count("Ruy Lopez", "60+0"))
	assert.Equal(t, 8, tab.Total)
	assert.Zero(t, tab.Skipped)
}

func TestCrossTabulate_CountsSumToFilteredSize(t *testing.T) {
	store := testutil.MixedGamesStore()
	pairs := [][2]models.Field{
		{models.FieldOpening, models.FieldEloBracket},
		{models.FieldWhite, models.FieldBlack},
		{models.FieldTimeControl, models.FieldResult},
		{models.FieldResult, models.FieldOpening},
	}
	for _, filter := range []models.GameFilter{{}, {Player: "Hikaru"}, {MaxElo: models.Bound(2000)}} {
		size := query.Summarize(store, filter).Games
		for _, p := range pairs {
			tab, err := query.CrossTabulate(store, filter, p[0], p[1])
			require.NoError(t, err)

			sum := 0
			for _, n := range tab.Counts {
				sum += n
			}
			assert.Equal(t, tab.Total, sum)
			assert.Equal(t, size, tab.Total+tab.Skipped)
		}
	}
}

func TestCrossTabulate_ResultAxisSkipsUnknown(t *testing.T) {
	tab, err := query.CrossTabulate(testutil.MixedGamesStore(), models.GameFilter{}, models.FieldOpening, models.FieldResult)
	require.NoError(t, err)
	assert.Equal(t, 7, tab.Total)
	assert.Equal(t, 1, tab.Skipped)
	assert.NotContains(t, tab.Cols, "Unknown")
}

func TestCrossTabulate_Invalid(t *testing.T) {
	_, err := query.CrossTabulate(testutil.ThreeGamesStore(), models.GameFilter{}, models.FieldPlayer, models.FieldOpening)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidParameter))
}

func TestCrossTabulate_Empty(t *testing.T) {
	tab, err := query.CrossTabulate(testutil.ThreeGamesStore(), models.GameFilter{White: "nobody"}, models.FieldOpening, models.FieldResult)
	require.NoError(t, err)
	assert.Empty(t, tab.Rows)
	assert.Empty(t, tab.Cols)
	assert.Zero(t, tab.Total)
}
