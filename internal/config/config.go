package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/tally/internal/currency"
)

// Settings holds process-wide display and validation options. None of them
// change the meaning of stored entries.
type Settings struct {
	CurrencySymbol   string `yaml:"currency_symbol"`
	DecimalPlaces    int    `yaml:"decimal_places"`
	DateFormat       string `yaml:"date_format"`       // label only, not enforced on input
	FiscalYearStart  string `yaml:"fiscal_year_start"` // month number, "1" = January
	EntriesPerPage   int    `yaml:"entries_per_page"`
	DebugMode        bool   `yaml:"debug_mode"`
	StrictValidation bool   `yaml:"strict_validation"`
}

// Default returns the settings a new workspace starts with.
func Default() *Settings {
	return &Settings{
		CurrencySymbol:  "$",
		DecimalPlaces:   2,
		DateFormat:      "YYYY-MM-DD",
		FiscalYearStart: "1",
		EntriesPerPage:  10,
	}
}

// Load reads a tally.yaml file from disk. Keys missing from the file keep
// their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// Save writes Settings to a YAML file.
func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	var errs []error
	if s.DecimalPlaces < 0 || s.DecimalPlaces > currency.MaxPlaces {
		errs = append(errs, fmt.Errorf("decimal_places must be between 0 and %d, got %d", currency.MaxPlaces, s.DecimalPlaces))
	}
	if s.EntriesPerPage <= 0 {
		errs = append(errs, fmt.Errorf("entries_per_page must be positive, got %d", s.EntriesPerPage))
	}
	if _, err := s.FiscalStartMonth(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FiscalStartMonth parses FiscalYearStart as a month number 1..12.
func (s *Settings) FiscalStartMonth() (int, error) {
	m, err := strconv.Atoi(strings.TrimSpace(s.FiscalYearStart))
	if err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("fiscal_year_start must be a month 1..12, got %q", s.FiscalYearStart)
	}
	return m, nil
}

// Formatter returns the amount formatter for these settings.
func (s *Settings) Formatter() currency.Formatter {
	return currency.NewFormatter(s.CurrencySymbol, s.DecimalPlaces)
}
