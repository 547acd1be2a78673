package query

import "github.com/vytor/chessdash/internal/models"

// CrossTabulate counts co-occurrences of (rowField, colField) values among
// records matching filter. Only observed pairs are stored. When either axis is
// Result, records with an unrecognized result are counted in Skipped rather
// than in a cell, so the cells sum to Total and Total+Skipped is the filtered
// record count.
func CrossTabulate(ds Dataset, filter models.GameFilter, rowField, colField models.Field) (models.CrossTab, error) {
	if err := categorical("row_field", rowField); err != nil {
		return models.CrossTab{}, err
	}
	if err := categorical("col_field", colField); err != nil {
		return models.CrossTab{}, err
	}

	tab := models.CrossTab{
		RowField: rowField,
		ColField: colField,
		Counts:   make(map[models.CrossKey]int),
	}
	rows := make(map[string]struct{})
	cols := make(map[string]struct{})
	for g := range filtered(ds, filter.Match) {
		if outcomeDependent(g, rowField, colField) {
			tab.Skipped++
			continue
		}
		r, c := rowField.Label(g), colField.Label(g)
		if _, ok := rows[r]; !ok {
			rows[r] = struct{}{}
			tab.Rows = append(tab.Rows, r)
		}
		if _, ok := cols[c]; !ok {
			cols[c] = struct{}{}
			tab.Cols = append(tab.Cols, c)
		}
		tab.Counts[models.CrossKey{Row: r, Col: c}]++
		tab.Total++
	}
	return tab, nil
}
