package models

// FrequencyEntry is one row of a ranked frequency table.
type FrequencyEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FrequencyTable is sorted by Count descending; ties keep first-seen order.
type FrequencyTable struct {
	Field   Field            `json:"field"`
	Entries []FrequencyEntry `json:"entries"`
	Total   int              `json:"total"`   // filtered records considered
	Skipped int              `json:"skipped"` // records excluded for an unrecognized result
}

// WinRate holds per-group outcome fractions. Draws sit in the denominator only,
// so WhiteWinRate+BlackWinRate < 1 whenever the group has draws.
type WinRate struct {
	Label        string  `json:"label"`
	Games        int     `json:"games"`
	WhiteWins    int     `json:"white_wins"`
	BlackWins    int     `json:"black_wins"`
	Draws        int     `json:"draws"`
	WhiteWinRate float64 `json:"white_win_rate"`
	BlackWinRate float64 `json:"black_win_rate"`
}

// DrawRate is the remaining share of the group.
func (w WinRate) DrawRate() float64 {
	if w.Games == 0 {
		return 0
	}
	return float64(w.Draws) / float64(w.Games)
}

// RateTable is the result of a win-rate-by-group query.
type RateTable struct {
	Field   Field     `json:"field"`
	Groups  []WinRate `json:"groups"`
	Skipped int       `json:"skipped"`
}

// TrendPoint is one full-window moving-average sample.
type TrendPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CrossKey addresses one cell of a cross tabulation.
type CrossKey struct {
	Row string `json:"row"`
	Col string `json:"col"`
}

// CrossTab is a sparse co-occurrence table; absent cells are zero.
type CrossTab struct {
	RowField Field            `json:"row_field"`
	ColField Field            `json:"col_field"`
	Rows     []string         `json:"rows"` // first-seen order
	Cols     []string         `json:"cols"` // first-seen order
	Counts   map[CrossKey]int `json:"-"`
	Total    int              `json:"total"`
	Skipped  int              `json:"skipped"`
}

// Count returns the cell count, zero when absent.
func (c CrossTab) Count(row, col string) int {
	return c.Counts[CrossKey{Row: row, Col: col}]
}

// Summary describes the filtered subset, feeding range sliders and counters.
type Summary struct {
	Games    int     `json:"games"`
	MinElo   int     `json:"min_elo"`
	MaxElo   int     `json:"max_elo"`
	AvgMoves float64 `json:"avg_moves"`
	Skipped  int     `json:"skipped"`
}

// PlayerSummary is one side of a head-to-head comparison.
type PlayerSummary struct {
	Player     string       `json:"player"`
	Games      int          `json:"games"`
	GamesWhite int          `json:"games_white"`
	GamesBlack int          `json:"games_black"`
	Wins       int          `json:"wins"`
	Draws      int          `json:"draws"`
	Losses     int          `json:"losses"`
	WinRate    float64      `json:"win_rate"`
	Skipped    int          `json:"skipped"`
	EloTrend   []TrendPoint `json:"elo_trend"`
}

// Encounters counts the games played directly between two players.
type Encounters struct {
	Games int `json:"games"`
	AWins int `json:"a_wins"`
	BWins int `json:"b_wins"`
	Draws int `json:"draws"`
}

// HeadToHead compares two players.
type HeadToHead struct {
	A          PlayerSummary `json:"a"`
	B          PlayerSummary `json:"b"`
	Encounters Encounters    `json:"encounters"`
}
