package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gridwell/listbind/internal/scenario"
	"github.com/gridwell/listbind/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and print the view transcript",
		Long: `Run a scripted scenario: seed records into a SQLite store, apply the
scripted mutations, and print the batched view transcript that the
binding produced.

By default the store lives in a temporary file that is removed
afterwards; pass --db to keep it.

Example:
  listbind run testdata/basic.yaml
  listbind run --db /tmp/demo.db demo.yaml --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default: temporary)")

	return cmd
}

func runScenario(opts *RunOptions, path string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	sc, err := scenario.Load(path)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load scenario", err)
	}
	slog.Info("scenario loaded", "name", sc.Name, "steps", len(sc.Steps))

	dbPath := opts.Database
	if dbPath == "" {
		dir, err := os.MkdirTemp("", "listbind-*")
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create temp dir", err)
		}
		defer os.RemoveAll(dir)
		dbPath = filepath.Join(dir, "listbind.db")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	result, err := scenario.Run(cmd.Context(), sc, st)
	if err != nil {
		return WrapExitError(ExitFailure, "scenario failed", err)
	}

	if err := writeLines(cmd.OutOrStdout(), opts.Format, result.Transcript); err != nil {
		return WrapExitError(ExitCommandError, "failed to write transcript", err)
	}
	return nil
}

func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
