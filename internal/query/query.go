// Package query computes aggregate views over an immutable set of game records.
//
// Every function is pure: it reads the dataset, never retains it, and returns a
// freshly built result. An empty filtered subset yields an empty result, not an
// error. Records whose result token was not recognized still count as games but
// are left out of anything that depends on the outcome, and each result reports
// how many were left out in Skipped.
package query

import (
	"iter"

	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/models"
)

// Dataset is the read-only view queries need. *records.Store implements it.
type Dataset interface {
	Records() iter.Seq[models.GameRecord]
}

// filtered yields the records of ds matching every predicate.
func filtered(ds Dataset, preds ...func(models.GameRecord) bool) iter.Seq[models.GameRecord] {
	return func(yield func(models.GameRecord) bool) {
	next:
		for g := range ds.Records() {
			for _, p := range preds {
				if !p(g) {
					continue next
				}
			}
			if !yield(g) {
				return
			}
		}
	}
}

func categorical(name string, f models.Field) error {
	if !f.Categorical() {
		return errors.NewInvalidParameter(name, "field "+string(f)+" cannot label a group")
	}
	return nil
}

func numeric(name string, f models.Field) error {
	if !f.Numeric() {
		return errors.NewInvalidParameter(name, "field "+string(f)+" is not numeric")
	}
	return nil
}

// outcomeDependent reports whether a record must be skipped because the query
// reads its result and the result is not one of the three outcomes.
func outcomeDependent(g models.GameRecord, fields ...models.Field) bool {
	if g.Result.Valid() {
		return false
	}
	for _, f := range fields {
		if f == models.FieldResult {
			return true
		}
	}
	return false
}

func truncate[T any](s []T, topK int) []T {
	if topK > 0 && len(s) > topK {
		return s[:topK]
	}
	return s
}
