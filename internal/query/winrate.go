package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/models"
)

// SortKey selects the descending order of a rate table.
type SortKey string

const (
	SortNone         SortKey = ""               // ascending group label
	SortWhiteWinRate SortKey = "white_win_rate"
	SortBlackWinRate SortKey = "black_win_rate"
	SortGames        SortKey = "games"
)

// ParseSortKey accepts the snake_case names, the camelCase rate field names,
// and "none".
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "")) {
	case "", "none":
		return SortNone, nil
	case "whitewinrate":
		return SortWhiteWinRate, nil
	case "blackwinrate":
		return SortBlackWinRate, nil
	case "games":
		return SortGames, nil
	default:
		return SortNone, fmt.Errorf("unknown sort key %q", s)
	}
}

// WinRateByGroup computes, per distinct value of groupField, the share of
// games won by White and by Black. Draws count toward the group size only,
// so the two rates sum to one exactly when the group has no draws. Groups
// are ordered by sortBy (descending; label ascending for SortNone) and then
// capped at topK when topK > 0.
func WinRateByGroup(ds Dataset, filter models.GameFilter, groupField models.Field, topK int, sortBy SortKey) (models.RateTable, error) {
	if err := categorical("group_field", groupField); err != nil {
		return models.RateTable{}, err
	}
	less, err := rateOrder(sortBy)
	if err != nil {
		return models.RateTable{}, err
	}

	table := models.RateTable{Field: groupField}
	index := make(map[string]int)
	for g := range filtered(ds, filter.Match) {
		if !g.Result.Valid() {
			table.Skipped++
			continue
		}
		label := groupField.Label(g)
		i, ok := index[label]
		if !ok {
			i = len(table.Groups)
			index[label] = i
			table.Groups = append(table.Groups, models.WinRate{Label: label})
		}
		w := &table.Groups[i]
		w.Games++
		switch g.Result {
		case models.WhiteWin:
			w.WhiteWins++
		case models.BlackWin:
			w.BlackWins++
		case models.Draw:
			w.Draws++
		}
	}

	for i := range table.Groups {
		w := &table.Groups[i]
		w.WhiteWinRate = float64(w.WhiteWins) / float64(w.Games)
		w.BlackWinRate = float64(w.BlackWins) / float64(w.Games)
	}

	byLabel := labelLess(groupField)
	sort.SliceStable(table.Groups, func(i, j int) bool {
		return byLabel(table.Groups[i].Label, table.Groups[j].Label)
	})
	if less != nil {
		sort.SliceStable(table.Groups, func(i, j int) bool {
			return less(table.Groups[i], table.Groups[j])
		})
	}
	table.Groups = truncate(table.Groups, topK)
	return table, nil
}

func rateOrder(key SortKey) (func(a, b models.WinRate) bool, error) {
	switch key {
	case SortNone:
		return nil, nil
	case SortWhiteWinRate:
		return func(a, b models.WinRate) bool { return a.WhiteWinRate > b.WhiteWinRate }, nil
	case SortBlackWinRate:
		return func(a, b models.WinRate) bool { return a.BlackWinRate > b.BlackWinRate }, nil
	case SortGames:
		return func(a, b models.WinRate) bool { return a.Games > b.Games }, nil
	default:
		return nil, errors.NewInvalidParameter("sort_by", fmt.Sprintf("unknown sort key %q", key))
	}
}

// labelLess orders labels numerically for numeric fields, lexically otherwise.
func labelLess(f models.Field) func(a, b string) bool {
	if f.Numeric() {
		return func(a, b string) bool {
			x, _ := strconv.Atoi(a)
			y, _ := strconv.Atoi(b)
			return x < y
		}
	}
	return func(a, b string) bool { return a < b }
}
