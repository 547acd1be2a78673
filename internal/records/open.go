package records

import (
	"fmt"

	"github.com/vytor/chessdash/internal/db"
)

// Open resolves a configured format and path to a Source. The returned close
// function releases any handle the source keeps open and is never nil.
func Open(format, path string) (Source, func() error, error) {
	noop := func() error { return nil }
	switch format {
	case "csv":
		return CSVFile(path), noop, nil
	case "pgn":
		return PGNFile(path), noop, nil
	case "sqlite":
		database, err := db.Open(path)
		if err != nil {
			return nil, noop, err
		}
		return NewSQLiteSource(path, database.DB), database.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported data format %q", format)
	}
}
