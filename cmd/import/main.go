package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vytor/chessdash/internal/chesscom"
	"github.com/vytor/chessdash/internal/config"
	"github.com/vytor/chessdash/internal/db"
	"github.com/vytor/chessdash/internal/logger"
	"github.com/vytor/chessdash/internal/records"
	"github.com/vytor/chessdash/internal/repository/sqlite"
	"github.com/vytor/chessdash/internal/services"
)

var (
	fromPath   string
	fromFormat string
	player     string
	months     int
	dbPath     string
	replace    bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy games into a SQLite database",
	Long: `import reads every game from a CSV or PGN file (--from) or from a player's
chess.com archives (--chesscom) and appends it to the games table of --db,
creating the database when needed. Serve the result with
DATA_FORMAT=sqlite DATA_PATH=<db>.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, ok := logger.LookupLevel(logLevel)
		if !ok {
			return fmt.Errorf("unknown log level %q", logLevel)
		}
		log := logger.New(logger.WithLevel(level), logger.WithColors(true))
		logger.SetDefault(log)

		src, closeSource, err := openSource()
		if err != nil {
			return err
		}
		defer closeSource()

		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer database.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logger.NewContext(ctx, log)

		svc := services.NewImportService(sqlite.NewGameRepository(database.DB))
		result, err := svc.Import(ctx, src, replace)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d games from %s into %s (%d replaced, %d total, %d with unrecognized results)\n",
			result.Inserted, result.Read, result.Source, dbPath, result.Deleted, result.Total, result.Malformed)
		return nil
	},
}

func init() {
	cfg := config.Load()

	rootCmd.Flags().StringVar(&fromPath, "from", "", "CSV or PGN file to import")
	rootCmd.Flags().StringVar(&fromFormat, "format", "", "source format: csv or pgn (inferred from the extension when empty)")
	rootCmd.Flags().StringVar(&player, "chesscom", "", "chess.com username whose archives to import")
	rootCmd.Flags().IntVar(&months, "months", 0, "most recent chess.com archive months to read (0 reads all)")
	rootCmd.Flags().StringVar(&dbPath, "db", "chessdash.db", "SQLite database to write")
	rootCmd.Flags().BoolVar(&replace, "replace", false, "delete existing games before importing")
	rootCmd.Flags().StringVar(&logLevel, "log-level", cfg.LogLevel, "DEBUG, INFO, WARN or ERROR")
	rootCmd.MarkFlagsOneRequired("from", "chesscom")
	rootCmd.MarkFlagsMutuallyExclusive("from", "chesscom")
	rootCmd.MarkFlagsMutuallyExclusive("format", "chesscom")
}

func openSource() (records.Source, func() error, error) {
	if player != "" {
		if months < 0 {
			return nil, nil, fmt.Errorf("--months must not be negative")
		}
		return chesscom.NewArchiveSource(chesscom.New(), player, months), func() error { return nil }, nil
	}

	format := fromFormat
	if format == "" {
		format = config.FormatFromPath(fromPath)
	}
	if format != config.FormatCSV && format != config.FormatPGN {
		return nil, nil, fmt.Errorf("--format must be csv or pgn (got %q)", format)
	}
	return records.Open(format, fromPath)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}
