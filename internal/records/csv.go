package records

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/vytor/chessdash/internal/errors"
)

// Column names a tabular source must carry. EloBracket may be present but is
// always re-derived from AverageElo.
const (
	ColWhite       = "White"
	ColBlack       = "Black"
	ColResult      = "Result"
	ColOpening     = "Opening"
	ColAverageElo  = "AverageElo"
	ColMoveCount   = "MoveCount"
	ColTimeControl = "TimeControl"
	ColEloBracket  = "EloBracket"
)

var errNegativeMoves = stderrors.New("move count must not be negative")

// RequiredColumns are checked before any row is converted.
var RequiredColumns = []string{ColWhite, ColBlack, ColResult, ColOpening, ColAverageElo, ColMoveCount, ColTimeControl}

// CSVSource reads a comma separated table with a header row.
type CSVSource struct {
	name string
	open func() (io.ReadCloser, error)
}

// CSVFile reads the table at path each time rows are requested.
func CSVFile(path string) *CSVSource {
	return &CSVSource{
		name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// CSVString reads the table from an in-memory string.
func CSVString(name, data string) *CSVSource {
	return &CSVSource{
		name: name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(data)), nil },
	}
}

func (s *CSVSource) Name() string { return s.name }

func (s *CSVSource) Rows(ctx context.Context) ([]Row, error) {
	f, err := s.open()
	if err != nil {
		return nil, &errors.LoadError{Source: s.name, Err: err}
	}
	defer f.Close()

	table, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, &errors.LoadError{Source: s.name, Err: err}
	}
	if len(table) == 0 {
		return nil, &errors.LoadError{Source: s.name, Err: fmt.Errorf("missing header row")}
	}
	for _, col := range RequiredColumns {
		if !slices.Contains(table[0], col) {
			return nil, &errors.LoadError{Source: s.name, Column: col, Err: fmt.Errorf("required column missing")}
		}
	}
	if len(table) == 1 {
		return nil, nil
	}

	df := dataframe.LoadRecords(table,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, &errors.LoadError{Source: s.name, Err: df.Err}
	}

	cols := make(map[string][]string, len(RequiredColumns))
	for _, col := range RequiredColumns {
		cols[col] = df.Col(col).Records()
	}

	n := df.Nrow()
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		if i%4096 == 0 && ctx.Err() != nil {
			return nil, &errors.LoadError{Source: s.name, Err: ctx.Err()}
		}
		elo, err := parseElo(cols[ColAverageElo][i])
		if err != nil {
			return nil, &errors.LoadError{Source: s.name, Row: i + 1, Column: ColAverageElo, Err: err}
		}
		moves, err := parseMoveCount(cols[ColMoveCount][i])
		if err != nil {
			return nil, &errors.LoadError{Source: s.name, Row: i + 1, Column: ColMoveCount, Err: err}
		}
		rows = append(rows, Row{
			White:       cell(cols[ColWhite][i]),
			Black:       cell(cols[ColBlack][i]),
			Result:      cell(cols[ColResult][i]),
			Opening:     cell(cols[ColOpening][i]),
			AverageElo:  elo,
			MoveCount:   moves,
			TimeControl: cell(cols[ColTimeControl][i]),
		})
	}
	return rows, nil
}

func cell(v string) string {
	return strings.TrimSpace(v)
}

// parseElo accepts integer or fractional ratings, rounding half away from zero.
func parseElo(v string) (int, error) {
	f, err := strconv.ParseFloat(cell(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number: %q", v)
	}
	return int(math.Round(f)), nil
}

func parseMoveCount(v string) (int, error) {
	f, err := strconv.ParseFloat(cell(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number: %q", v)
	}
	if f < 0 {
		return 0, errNegativeMoves
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", v)
	}
	return int(f), nil
}
