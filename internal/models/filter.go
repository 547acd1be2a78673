package models

// GameFilter is a conjunction of equality and range constraints on GameRecord.
// Empty strings and nil bounds are inactive. Bounds are inclusive.
type GameFilter struct {
	Player      string // either side
	White       string
	Black       string
	Opening     string
	TimeControl string
	EloBracket  EloBracket
	Result      string // token or enum name, compared after ParseResult
	MinElo      *int
	MaxElo      *int
	MinMoves    *int
	MaxMoves    *int
}

// Bound returns a pointer to n for use as a GameFilter range bound.
func Bound(n int) *int {
	return &n
}

// Match reports whether g satisfies every active constraint.
func (f GameFilter) Match(g GameRecord) bool {
	if f.Player != "" && !g.Involves(f.Player) {
		return false
	}
	if f.White != "" && g.White != f.White {
		return false
	}
	if f.Black != "" && g.Black != f.Black {
		return false
	}
	if f.Opening != "" && g.Opening != f.Opening {
		return false
	}
	if f.TimeControl != "" && g.TimeControl != f.TimeControl {
		return false
	}
	if f.EloBracket != "" && g.EloBracket != f.EloBracket {
		return false
	}
	if f.Result != "" && g.Result != ParseResult(f.Result) {
		return false
	}
	return within(g.AverageElo, f.MinElo, f.MaxElo) && within(g.MoveCount, f.MinMoves, f.MaxMoves)
}

func within(v int, lo, hi *int) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

// IsZero reports whether no constraint is active.
func (f GameFilter) IsZero() bool {
	return f == GameFilter{}
}
