// Package workspace stores a book as plain files in a directory:
//
//	tally.yaml                      settings
//	accounts/chart-of-accounts.csv  chart of accounts
//	journal.json                    journal entries
//
// Balances are never written; they are rebuilt from the journal on load.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

const (
	settingsFile = "tally.yaml"
	journalFile  = "journal.json"
)

var (
	// ErrNotWorkspace is returned when a directory has no tally.yaml.
	ErrNotWorkspace = errors.New("not a tally workspace")
	// ErrExists is returned when initializing over an existing workspace.
	ErrExists = errors.New("workspace already exists")
)

// SettingsPath returns the settings file of a workspace.
func SettingsPath(dir string) string {
	return filepath.Join(dir, settingsFile)
}

// JournalPath returns the journal file of a workspace.
func JournalPath(dir string) string {
	return filepath.Join(dir, journalFile)
}

// Init creates a workspace with default settings, the default chart of
// accounts and an empty journal.
func Init(dir string) error {
	if _, err := os.Stat(SettingsPath(dir)); err == nil {
		return fmt.Errorf("%s: %w", dir, ErrExists)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating workspace dir: %w", err)
	}
	if err := config.Save(SettingsPath(dir), config.Default()); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := accounts.NewRegistry(accounts.DefaultChart()).Save(dir); err != nil {
		return err
	}
	return writeJournal(dir, ledger.New(nil, nil, nil))
}

// Load reads a workspace into a Book. TALLY_* environment variables override
// the stored settings for this process only. A missing journal file loads as
// an empty journal.
func Load(dir string, logger *slog.Logger) (*ledger.Book, error) {
	settings, err := config.Load(SettingsPath(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w (run tally init)", dir, ErrNotWorkspace)
		}
		return nil, err
	}
	if err := settings.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	reg, err := accounts.Load(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	var chart []model.Account
	if reg != nil {
		chart = reg.All()
	}

	// Entries are loaded before strict validation is switched on so a
	// journal written under lax settings still opens.
	strict := settings.StrictValidation
	settings.StrictValidation = false
	book := ledger.New(settings, chart, logger)

	f, err := os.Open(JournalPath(dir))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("opening journal: %w", err)
	default:
		defer f.Close()
		entries, err := journal.ReadJSON(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", JournalPath(dir), err)
		}
		if err := book.ImportEntries(entries); err != nil {
			return nil, fmt.Errorf("loading %s: %w", JournalPath(dir), err)
		}
	}

	settings.StrictValidation = strict
	if err := book.SetSettings(settings); err != nil {
		return nil, err
	}
	return book, nil
}

// Save writes the chart of accounts and the journal. Settings are saved
// separately with config.Save so environment overrides never reach disk.
func Save(dir string, book *ledger.Book) error {
	if err := accounts.NewRegistry(book.Accounts()).Save(dir); err != nil {
		return err
	}
	return writeJournal(dir, book)
}

func writeJournal(dir string, book *ledger.Book) error {
	f, err := os.Create(JournalPath(dir))
	if err != nil {
		return fmt.Errorf("creating journal file: %w", err)
	}
	defer f.Close()

	if err := journal.WriteJSON(f, book.ExportEntries()); err != nil {
		return fmt.Errorf("writing journal: %w", err)
	}
	return nil
}
