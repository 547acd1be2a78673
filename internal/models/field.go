package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names a column of GameRecord that queries can group, rank or order by.
type Field string

const (
	FieldWhite       Field = "White"
	FieldBlack       Field = "Black"
	FieldPlayer      Field = "Player" // either side; only meaningful for distinct values and filters
	FieldResult      Field = "Result"
	FieldOpening     Field = "Opening"
	FieldAverageElo  Field = "AverageElo"
	FieldMoveCount   Field = "MoveCount"
	FieldTimeControl Field = "TimeControl"
	FieldEloBracket  Field = "EloBracket"
	FieldGameNumber  Field = "GameNumber"
)

var fields = []Field{
	FieldWhite, FieldBlack, FieldPlayer, FieldResult, FieldOpening,
	FieldAverageElo, FieldMoveCount, FieldTimeControl, FieldEloBracket, FieldGameNumber,
}

// ParseField resolves a field name case-insensitively, ignoring underscores.
func ParseField(s string) (Field, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	for _, f := range fields {
		if strings.ToLower(string(f)) == norm {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// Numeric reports whether the field holds an integer value.
func (f Field) Numeric() bool {
	return f == FieldAverageElo || f == FieldMoveCount || f == FieldGameNumber
}

// Categorical reports whether the field can label a group of a single record.
func (f Field) Categorical() bool {
	return f != FieldPlayer && f != ""
}

// PlayerField reports whether values of the field are player identifiers.
func (f Field) PlayerField() bool {
	return f == FieldWhite || f == FieldBlack || f == FieldPlayer
}

// Label renders the field's value of g as a group label.
func (f Field) Label(g GameRecord) string {
	switch f {
	case FieldWhite:
		return g.White
	case FieldBlack:
		return g.Black
	case FieldResult:
		return g.Result.String()
	case FieldOpening:
		return g.Opening
	case FieldAverageElo:
		return strconv.Itoa(g.AverageElo)
	case FieldMoveCount:
		return strconv.Itoa(g.MoveCount)
	case FieldTimeControl:
		return g.TimeControl
	case FieldEloBracket:
		return string(g.EloBracket)
	case FieldGameNumber:
		return strconv.Itoa(g.GameNumber)
	default:
		return ""
	}
}

// Value returns the numeric value of a numeric field.
func (f Field) Value(g GameRecord) (float64, bool) {
	switch f {
	case FieldAverageElo:
		return float64(g.AverageElo), true
	case FieldMoveCount:
		return float64(g.MoveCount), true
	case FieldGameNumber:
		return float64(g.GameNumber), true
	default:
		return 0, false
	}
}

// Matches reports whether g carries value in this field. For FieldPlayer either side matches.
func (f Field) Matches(g GameRecord, value string) bool {
	if f == FieldPlayer {
		return g.Involves(value)
	}
	return f.Label(g) == value
}
