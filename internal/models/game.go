package models

import "strings"

// Result is the outcome of a finished game.
type Result int

const (
	ResultUnknown Result = iota
	WhiteWin
	BlackWin
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWin:
		return "WhiteWin"
	case BlackWin:
		return "BlackWin"
	case Draw:
		return "Draw"
	default:
		return "Unknown"
	}
}

// Valid reports whether r is one of the three enumerated outcomes.
func (r Result) Valid() bool {
	return r == WhiteWin || r == BlackWin || r == Draw
}

// ParseResult maps a PGN result token or an enum name to a Result.
// Unrecognized tokens yield ResultUnknown.
func ParseResult(s string) Result {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1-0", "whitewin":
		return WhiteWin
	case "0-1", "blackwin":
		return BlackWin
	case "1/2-1/2", "½-½", "draw":
		return Draw
	default:
		return ResultUnknown
	}
}

// EloBracket is the skill tier of a game, derived from its average rating.
type EloBracket string

const (
	Beginner     EloBracket = "Beginner"
	Intermediate EloBracket = "Intermediate"
	Advanced     EloBracket = "Advanced"
	Expert       EloBracket = "Expert"
)

// Bracket boundaries (lower bounds, inclusive).
const (
	IntermediateMinElo = 1200
	AdvancedMinElo     = 1800
	ExpertMinElo       = 2400
)

// Brackets lists every bracket in ascending skill order.
var Brackets = []EloBracket{Beginner, Intermediate, Advanced, Expert}

// BracketFor buckets an average Elo:
// <1200 Beginner, 1200-1799 Intermediate, 1800-2399 Advanced, >=2400 Expert.
func BracketFor(averageElo int) EloBracket {
	switch {
	case averageElo >= ExpertMinElo:
		return Expert
	case averageElo >= AdvancedMinElo:
		return Advanced
	case averageElo >= IntermediateMinElo:
		return Intermediate
	default:
		return Beginner
	}
}

// GameRecord is one finished game as held by the record store.
type GameRecord struct {
	GameNumber  int        `json:"game_number"`
	White       string     `json:"white"`
	Black       string     `json:"black"`
	Result      Result     `json:"-"`
	RawResult   string     `json:"result"`
	Opening     string     `json:"opening"`
	AverageElo  int        `json:"average_elo"`
	MoveCount   int        `json:"move_count"`
	TimeControl string     `json:"time_control"`
	EloBracket  EloBracket `json:"elo_bracket"`
}

// NewGameRecord builds a record with its derived columns filled in.
func NewGameRecord(gameNumber int, white, black, result, opening string, averageElo, moveCount int, timeControl string) GameRecord {
	return GameRecord{
		GameNumber:  gameNumber,
		White:       white,
		Black:       black,
		Result:      ParseResult(result),
		RawResult:   strings.TrimSpace(result),
		Opening:     opening,
		AverageElo:  averageElo,
		MoveCount:   moveCount,
		TimeControl: timeControl,
		EloBracket:  BracketFor(averageElo),
	}
}

// Involves reports whether player sat on either side of the board.
func (g GameRecord) Involves(player string) bool {
	return g.White == player || g.Black == player
}
