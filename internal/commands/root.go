// Package commands implements the tally command line.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/buildinfo"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/workspace"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	dir     string
	envFile string
	level   *slog.LevelVar
	logger  *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{level: new(slog.LevelVar)}
	a.level.Set(slog.LevelWarn)

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Single-user double-entry bookkeeping",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: a.level}))
			return config.LoadDotEnv(a.envFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dir, "dir", ".", "workspace directory")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "env file with TALLY_* overrides (default ./.env if present)")

	rootCmd.AddCommand(
		newInitCommand(a),
		newEntryCommand(a),
		newAccountCommand(a),
		newReportCommand(a),
		newExportCommand(a),
		newImportCommand(a),
		newClearCommand(a),
		newSettingsCommand(a),
	)

	return rootCmd
}

// load opens the workspace and raises the log level when debug_mode is set.
func (a *app) load() (*ledger.Book, error) {
	book, err := workspace.Load(a.dir, a.logger)
	if err != nil {
		return nil, err
	}
	if book.Settings().DebugMode {
		a.level.Set(slog.LevelDebug)
	}
	return book, nil
}

// update runs fn against the workspace and saves it only if fn succeeds.
func (a *app) update(fn func(book *ledger.Book) error) error {
	book, err := a.load()
	if err != nil {
		return err
	}
	if err := fn(book); err != nil {
		return err
	}
	return workspace.Save(a.dir, book)
}
