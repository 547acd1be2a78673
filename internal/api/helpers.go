package api

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/models"
)

var validate = newValidator()

// newValidator reports failures under the query parameter name rather than
// the Go field name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("query"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// filterParams is the query-string form of models.GameFilter.
type filterParams struct {
	Player      string `query:"player" validate:"max=200"`
	White       string `query:"white" validate:"max=200"`
	Black       string `query:"black" validate:"max=200"`
	Opening     string `query:"opening" validate:"max=200"`
	Result      string `query:"result" validate:"omitempty,oneof=1-0 0-1 1/2-1/2 WhiteWin BlackWin Draw whitewin blackwin draw"`
	TimeControl string `query:"time_control" validate:"max=50"`
	EloBracket  string `query:"elo_bracket" validate:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
	MinElo      *int   `query:"min_elo" validate:"omitempty,gte=0"`
	MaxElo      *int   `query:"max_elo" validate:"omitempty,gte=0"`
	MinMoves    *int   `query:"min_moves" validate:"omitempty,gte=0"`
	MaxMoves    *int   `query:"max_moves" validate:"omitempty,gte=0"`
}

func (p filterParams) filter() models.GameFilter {
	return models.GameFilter{
		Player:      p.Player,
		White:       p.White,
		Black:       p.Black,
		Opening:     p.Opening,
		TimeControl: p.TimeControl,
		EloBracket:  models.EloBracket(p.EloBracket),
		Result:      p.Result,
		MinElo:      p.MinElo,
		MaxElo:      p.MaxElo,
		MinMoves:    p.MinMoves,
		MaxMoves:    p.MaxMoves,
	}
}

// parseFilter reads and validates the shared filter parameters.
func parseFilter(q url.Values) (models.GameFilter, error) {
	var p filterParams
	p.Player = strings.TrimSpace(q.Get("player"))
	p.White = strings.TrimSpace(q.Get("white"))
	p.Black = strings.TrimSpace(q.Get("black"))
	p.Opening = strings.TrimSpace(q.Get("opening"))
	p.Result = strings.TrimSpace(q.Get("result"))
	p.TimeControl = strings.TrimSpace(q.Get("time_control"))
	p.EloBracket = strings.TrimSpace(q.Get("elo_bracket"))

	var err error
	if p.MinElo, err = boundParam(q, "min_elo"); err != nil {
		return models.GameFilter{}, err
	}
	if p.MaxElo, err = boundParam(q, "max_elo"); err != nil {
		return models.GameFilter{}, err
	}
	if p.MinMoves, err = boundParam(q, "min_moves"); err != nil {
		return models.GameFilter{}, err
	}
	if p.MaxMoves, err = boundParam(q, "max_moves"); err != nil {
		return models.GameFilter{}, err
	}

	if err := validateStruct(p); err != nil {
		return models.GameFilter{}, err
	}
	if err := checkRange("min_elo", "max_elo", p.MinElo, p.MaxElo); err != nil {
		return models.GameFilter{}, err
	}
	if err := checkRange("min_moves", "max_moves", p.MinMoves, p.MaxMoves); err != nil {
		return models.GameFilter{}, err
	}
	return p.filter(), nil
}

// boundParam parses an optional range bound; an absent parameter is nil.
func boundParam(q url.Values, name string) (*int, error) {
	if strings.TrimSpace(q.Get(name)) == "" {
		return nil, nil
	}
	n, err := intParam(q, name, 0)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func checkRange(minName, maxName string, lo, hi *int) error {
	if lo != nil && hi != nil && *hi < *lo {
		return errors.NewValidationError(maxName, fmt.Sprintf("%s must not be less than %s", maxName, minName))
	}
	return nil
}

// intParam parses an optional integer parameter, returning def when absent.
func intParam(q url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(name, fmt.Sprintf("%q is not an integer", raw))
	}
	return n, nil
}

func stringParam(q url.Values, name, def string) string {
	if v := strings.TrimSpace(q.Get(name)); v != "" {
		return v
	}
	return def
}

// validateStruct runs the validator and folds every failure into one
// VALIDATION_ERROR naming the offending parameters.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.NewInternalError(err)
	}

	var (
		fields  []string
		details strings.Builder
	)
	for _, fe := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		fields = append(fields, fe.Field())
		switch fe.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "gte", "min":
			details.WriteString(fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "lte", "max":
			if fe.Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
			}
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.NewValidationError(strings.Join(fields, ","), details.String())
}
