package query

import (
	"sort"

	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/models"
)

// RankByFrequency counts each distinct value of field among records matching
// filter, most frequent first. Ties keep the order in which values were first
// seen. topK <= 0 disables the cap.
func RankByFrequency(ds Dataset, filter models.GameFilter, field models.Field, topK int) (models.FrequencyTable, error) {
	if err := categorical("field", field); err != nil {
		return models.FrequencyTable{}, err
	}
	return rank(ds, field, topK, filter.Match), nil
}

// TopNByField ranks rankField among records whose filterField equals value,
// within filter. An identifier on a player field that matches no record at all
// is reported as *errors.UnknownPlayerError.
func TopNByField(ds Dataset, filter models.GameFilter, filterField models.Field, value string, rankField models.Field, topK int) (models.FrequencyTable, error) {
	if filterField == "" {
		return models.FrequencyTable{}, errors.NewInvalidParameter("filter_field", "must not be empty")
	}
	if err := categorical("rank_field", rankField); err != nil {
		return models.FrequencyTable{}, err
	}
	if filterField.PlayerField() && !exists(ds, func(g models.GameRecord) bool { return filterField.Matches(g, value) }) {
		return models.FrequencyTable{}, &errors.UnknownPlayerError{Player: value}
	}
	return rank(ds, rankField, topK, filter.Match, func(g models.GameRecord) bool {
		return filterField.Matches(g, value)
	}), nil
}

func rank(ds Dataset, field models.Field, topK int, preds ...func(models.GameRecord) bool) models.FrequencyTable {
	table := models.FrequencyTable{Field: field}
	index := make(map[string]int)
	for g := range filtered(ds, preds...) {
		if outcomeDependent(g, field) {
			table.Skipped++
			continue
		}
		table.Total++
		label := field.Label(g)
		i, ok := index[label]
		if !ok {
			i = len(table.Entries)
			index[label] = i
			table.Entries = append(table.Entries, models.FrequencyEntry{Label: label})
		}
		table.Entries[i].Count++
	}
	sort.SliceStable(table.Entries, func(i, j int) bool {
		return table.Entries[i].Count > table.Entries[j].Count
	})
	table.Entries = truncate(table.Entries, topK)
	return table
}

func exists(ds Dataset, pred func(models.GameRecord) bool) bool {
	for range filtered(ds, pred) {
		return true
	}
	return false
}
