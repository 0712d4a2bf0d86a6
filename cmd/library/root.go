package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/config"
)

const (
	flagConfig     = "config"
	flagEngine     = "engine"
	flagAdapter    = "adapter"
	flagDSN        = "dsn"
	flagSQLitePath = "sqlite-path"
	flagLogFormat  = "log-format"
	flagLogLevel   = "log-level"
	flagOutput     = "output"
	flagToday      = "today"
)

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "library",
		Short:         "Lend books, close loans and manage fines",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch a.flags.output {
			case outputText, outputJSON:
			default:
				return fmt.Errorf("%w: --output must be %q or %q", errUsage, outputText, outputJSON)
			}

			return a.configure(cmd.Flags().Changed)
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.flags.configPath, flagConfig, "", "YAML config file")
	flags.StringVar(&a.flags.engine, flagEngine, config.EngineSQLite,
		strings.Join([]string{config.EngineSQLite, config.EnginePostgres, config.EngineMemory}, "|"))
	flags.StringVar(&a.flags.adapter, flagAdapter, config.AdapterPGX,
		"postgres client: "+strings.Join([]string{config.AdapterPGX, config.AdapterSQL, config.AdapterSQLX}, "|"))
	flags.StringVar(&a.flags.dsn, flagDSN, "", "postgres connection string")
	flags.StringVar(&a.flags.sqlitePath, flagSQLitePath, "library.db", "sqlite database file")
	flags.StringVar(&a.flags.logFormat, flagLogFormat, config.LogFormatText,
		strings.Join([]string{config.LogFormatText, config.LogFormatJSON, config.LogFormatZap}, "|"))
	flags.StringVar(&a.flags.logLevel, flagLogLevel, "info", "debug|info|warn|error")
	flags.StringVarP(&a.flags.output, flagOutput, "o", outputText, outputText+"|"+outputJSON)
	flags.StringVar(&a.flags.today, flagToday, "", "run as if today were this date (YYYY-MM-DD)")

	root.AddCommand(
		newBookCommand(a),
		newMemberCommand(a),
		newLoanCommand(a),
		newFineCommand(a),
		newReportCommand(a),
		newSweepCommand(a),
		newServeCommand(a),
		newJournalCommand(a),
		newMigrateCommand(a),
	)

	return root
}

// storeRunE opens the store before calling run with the command's context.
func storeRunE(a *app, run func(ctx context.Context, store shell.LendingStore, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := a.open(ctx); err != nil {
			return err
		}

		return run(ctx, a.store, args)
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}

		return nil
	}
}

// parseID parses a uuid argument. An empty value yields a new v7 id when generate is set.
func parseID(kind string, raw string, generate bool) (uuid.UUID, error) {
	if raw == "" && generate {
		return uuid.NewV7()
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s id %q is not a uuid", core.ErrValidation, kind, raw)
	}

	return id, nil
}

// parseOptionalDate parses a YYYY-MM-DD flag. An empty value yields nil.
func parseOptionalDate(flag string, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil //nolint:nilnil // absent flag
	}

	day, err := core.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: --%s %q is not a date", core.ErrValidation, flag, raw)
	}

	return &day, nil
}
