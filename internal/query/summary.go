package query

import "github.com/vytor/chessdash/internal/models"

// Summarize describes the records matching filter: how many there are, their
// rating range and average length.
func Summarize(ds Dataset, filter models.GameFilter) models.Summary {
	var (
		s     models.Summary
		moves int
	)
	for g := range filtered(ds, filter.Match) {
		if s.Games == 0 || g.AverageElo < s.MinElo {
			s.MinElo = g.AverageElo
		}
		if s.Games == 0 || g.AverageElo > s.MaxElo {
			s.MaxElo = g.AverageElo
		}
		s.Games++
		moves += g.MoveCount
		if !g.Result.Valid() {
			s.Skipped++
		}
	}
	if s.Games > 0 {
		s.AvgMoves = float64(moves) / float64(s.Games)
	}
	return s
}

// Games returns one page of the records matching filter in load order along
// with the total number of matches. limit <= 0 returns every match after offset.
func Games(ds Dataset, filter models.GameFilter, offset, limit int) ([]models.GameRecord, int) {
	if offset < 0 {
		offset = 0
	}
	var (
		page  []models.GameRecord
		total int
	)
	for g := range filtered(ds, filter.Match) {
		if total >= offset && (limit <= 0 || len(page) < limit) {
			page = append(page, g)
		}
		total++
	}
	return page, total
}
