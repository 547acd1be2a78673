package query

import (
	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/models"
)

// HeadToHead summarizes each player independently over the records matching
// filter and counts the games they played against each other. A player that
// appears in no record of ds at all is an *errors.UnknownPlayerError; a known
// player whose games are all filtered out gets an empty summary.
//
// Win rate is wins as White plus wins as Black over every game of that player
// with a recognized result. The Elo trend is the trailing window average of
// AverageElo over the player's own games in game-number order.
func HeadToHead(ds Dataset, filter models.GameFilter, playerA, playerB string, window int) (models.HeadToHead, error) {
	if playerA == "" {
		return models.HeadToHead{}, errors.NewInvalidParameter("player_a", "must not be empty")
	}
	if playerB == "" {
		return models.HeadToHead{}, errors.NewInvalidParameter("player_b", "must not be empty")
	}
	if window < 1 {
		return models.HeadToHead{}, errors.NewInvalidParameter("window", "must be at least 1")
	}
	for _, p := range []string{playerA, playerB} {
		if !exists(ds, func(g models.GameRecord) bool { return g.Involves(p) }) {
			return models.HeadToHead{}, &errors.UnknownPlayerError{Player: p}
		}
	}

	a := newPlayerTally(playerA)
	b := newPlayerTally(playerB)
	var enc models.Encounters

	for g := range filtered(ds, filter.Match) {
		a.add(g)
		b.add(g)
		if (g.White == playerA && g.Black == playerB) || (g.White == playerB && g.Black == playerA) {
			enc.Games++
			switch winner(g) {
			case playerA:
				enc.AWins++
			case playerB:
				enc.BWins++
			case "":
				if g.Result == models.Draw {
					enc.Draws++
				}
			}
		}
	}

	return models.HeadToHead{
		A:          a.summary(window),
		B:          b.summary(window),
		Encounters: enc,
	}, nil
}

// winner names the winning player, or "" for draws and unrecognized results.
func winner(g models.GameRecord) string {
	switch g.Result {
	case models.WhiteWin:
		return g.White
	case models.BlackWin:
		return g.Black
	default:
		return ""
	}
}

type playerTally struct {
	s     models.PlayerSummary
	games []float64
	elos  []float64
}

func newPlayerTally(player string) *playerTally {
	return &playerTally{s: models.PlayerSummary{Player: player}}
}

func (t *playerTally) add(g models.GameRecord) {
	if !g.Involves(t.s.Player) {
		return
	}
	t.s.Games++
	if g.White == t.s.Player {
		t.s.GamesWhite++
	}
	if g.Black == t.s.Player {
		t.s.GamesBlack++
	}
	t.games = append(t.games, float64(g.GameNumber))
	t.elos = append(t.elos, float64(g.AverageElo))

	switch {
	case !g.Result.Valid():
		t.s.Skipped++
	case g.Result == models.Draw:
		t.s.Draws++
	case winner(g) == t.s.Player:
		t.s.Wins++
	default:
		t.s.Losses++
	}
}

func (t *playerTally) summary(window int) models.PlayerSummary {
	s := t.s
	if rated := s.Wins + s.Draws + s.Losses; rated > 0 {
		s.WinRate = float64(s.Wins) / float64(rated)
	}
	// Records arrive in load order, which is game-number order.
	s.EloTrend = newTrend(t.games, t.elos, window).Points()
	return s
}
