package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"gostatcheck/adapters/excel"
	"gostatcheck/adapters/postgres"
	"gostatcheck/adapters/recordfile"
	"gostatcheck/app"
	"gostatcheck/domain/verdict"
	"gostatcheck/internal"
	"gostatcheck/internal/config"
	"gostatcheck/internal/errors"
	"gostatcheck/internal/migration"
)

// Set up by the root command before any subcommand runs.
var (
	cfg    *config.Config
	logger *internal.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "statcheck",
		Short:         "Check reported p-values against their test statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is fine; the environment may already be set.
			if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
				return errors.Wrapf(errors.WithCode(errors.CodeConfigInvalid, err), "failed to load %s", envFile)
			}
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			logger = internal.NewLogger(cfg.Log.Level)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading configuration")

	rootCmd.AddCommand(
		newCheckCmd(),
		newVoteCmd(),
	)
	return rootCmd
}

// checkFlags override the matching configuration values when set.
type checkFlags struct {
	alpha   float64
	workers int
	xlsx    string
	sheet   string
	store   bool
}

func (f *checkFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.alpha, "alpha", config.DefaultSignificanceLevel, "Significance level")
	cmd.Flags().IntVar(&f.workers, "workers", config.DefaultWorkers, "Records evaluated at once (1 = sequential)")
}

func (f *checkFlags) apply(cmd *cobra.Command) error {
	if cmd.Flags().Changed("alpha") {
		cfg.Check.SignificanceLevel = f.alpha
	}
	if cmd.Flags().Changed("workers") {
		cfg.Check.Workers = f.workers
	}
	if cmd.Flags().Changed("sheet") {
		cfg.Output.SheetName = f.sheet
	}
	return cfg.Validate()
}

func newCheckCmd() *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check [records-file...]",
		Short: "Check the records extracted from one or more documents",
		Long: `Check every reported test in each records file and print one result table per file.

Records files are JSON or YAML, either a list of records or {"records": [...]}:

  [{"test_type": "t", "df1": 25, "test_value": 2.10, "operator": "=", "reported_p_value": 0.05}]

Configuration is read from the environment (and .env):
- STATCHECK_SIGNIFICANCE_LEVEL (default: 0.05)
- STATCHECK_WORKERS (default: 1)
- STATCHECK_SHEET (default: Statcheck)
- LOG_LEVEL (default: INFO)
- DATABASE_URL (required by --store)

Example: statcheck check paper.json --alpha 0.01 --xlsx results.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd); err != nil {
				return err
			}
			return runCheck(cmd.Context(), cmd, args, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&flags.xlsx, "xlsx", "", "Also write all results to this workbook")
	cmd.Flags().StringVar(&flags.sheet, "sheet", config.DefaultSheetName, "Workbook sheet name")
	cmd.Flags().BoolVar(&flags.store, "store", false, "Also store results in the DATABASE_URL database")

	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, paths []string, flags checkFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	service := app.NewCheckService(cfg.Check, logger)

	var workbook *excel.Writer
	if flags.xlsx != "" {
		excelCfg := excel.DefaultExcelConfig(flags.xlsx)
		excelCfg.SheetName = cfg.Output.SheetName
		excelCfg.BatchColumn = len(paths) > 1
		var err error
		workbook, err = excel.NewWriter(excelCfg)
		if err != nil {
			return err
		}
	}

	var store *postgres.ResultRepository
	if flags.store {
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()
		store = postgres.NewResultRepository(db)
	}
	sink := app.Sinks(workbook, store)

	for _, path := range paths {
		reader, err := recordfile.NewReader(path)
		if err != nil {
			return err
		}
		report, err := service.CheckSource(ctx, reader, sink)
		if err != nil {
			return errors.Wrapf(err, "checking %s", path)
		}

		fmt.Fprintf(out, "%s\n", headingStyle.Render(path))
		if len(report.Rows) == 0 {
			fmt.Fprintln(out, "No statistical tests were found.")
			continue
		}
		fmt.Fprintln(out, renderTable(report.Rows))
		fmt.Fprintln(out, renderSummary(report.Summary))
		if store != nil {
			fmt.Fprintf(out, "Stored as batch %s\n", report.BatchID)
		}
	}

	if workbook != nil {
		if err := workbook.Close(); err != nil {
			return err
		}
		logger.Info("wrote %d rows to %s", workbook.Rows(), flags.xlsx)
	}
	return nil
}

// openStore connects to DATABASE_URL and brings the schema up to date.
func openStore(ctx context.Context) (*sqlx.DB, error) {
	if !cfg.Database.Enabled() {
		return nil, errors.ConfigInvalid("--store needs DATABASE_URL")
	}
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}
	logger.Debug("result store ready (schema %s)", runner.Version())
	return db, nil
}

func newVoteCmd() *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "vote [run-file...]",
		Short: "Print the most frequent result table across repeated extraction runs",
		Long: `Check each run file (repeated extractions of the same document) and print the
result table produced most often. Runs without any records do not vote; ties go to
the earliest run.

STATCHECK_RUNS_REQUIRED sets the minimum number of run files (default: 1).

Example: statcheck vote run1.json run2.json run3.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd); err != nil {
				return err
			}
			return runVote(cmd.Context(), cmd, args)
		},
	}
	flags.register(cmd)
	return cmd
}

func runVote(ctx context.Context, cmd *cobra.Command, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(paths) < cfg.Vote.RunsRequired {
		return errors.InvalidInput(fmt.Sprintf("vote needs at least %d runs, got %d", cfg.Vote.RunsRequired, len(paths)))
	}

	service := app.NewCheckService(cfg.Check, logger)
	runs := make([][]verdict.ResultRow, 0, len(paths))
	for i, path := range paths {
		reader, err := recordfile.NewReader(path)
		if err != nil {
			return err
		}
		report, err := service.CheckSource(ctx, reader, nil)
		if err != nil {
			return errors.Wrapf(err, "checking %s", path)
		}
		if len(report.Rows) == 0 {
			logger.Warn("run %d of %d (%s) has no results", i+1, len(paths), path)
		}
		runs = append(runs, report.Rows)
	}

	out := cmd.OutOrStdout()
	vote, ok := app.MostFrequent(runs)
	if !ok {
		fmt.Fprintln(out, "Inconsistent results, please run the extraction again.")
		return nil
	}

	fmt.Fprintln(out, headingStyle.Render("Most frequent result"))
	fmt.Fprintln(out, renderTable(vote.Rows))
	fmt.Fprintf(out, "%d of %d runs produced this table.\n", vote.Votes, vote.Runs)
	return nil
}
