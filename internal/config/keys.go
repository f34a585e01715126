package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrUnknownKey is returned by Set for keys that are not settings.
var ErrUnknownKey = errors.New("unknown setting")

// EnvPrefix prefixes the environment variables that override settings,
// e.g. TALLY_CURRENCY_SYMBOL.
const EnvPrefix = "TALLY_"

// field binds a yaml key to a setter and getter on Settings.
type field struct {
	set func(s *Settings, v string) error
	get func(s *Settings) string
}

var fields = map[string]field{
	"currency_symbol": {
		set: func(s *Settings, v string) error {
			if v == "" {
				v = Default().CurrencySymbol
			}
			s.CurrencySymbol = v
			return nil
		},
		get: func(s *Settings) string { return s.CurrencySymbol },
	},
	"decimal_places": {
		set: func(s *Settings, v string) error { return setInt(&s.DecimalPlaces, v) },
		get: func(s *Settings) string { return strconv.Itoa(s.DecimalPlaces) },
	},
	"date_format": {
		set: func(s *Settings, v string) error {
			if v == "" {
				v = Default().DateFormat
			}
			s.DateFormat = v
			return nil
		},
		get: func(s *Settings) string { return s.DateFormat },
	},
	"fiscal_year_start": {
		set: func(s *Settings, v string) error {
			if v == "" {
				v = Default().FiscalYearStart
			}
			s.FiscalYearStart = v
			return nil
		},
		get: func(s *Settings) string { return s.FiscalYearStart },
	},
	"entries_per_page": {
		set: func(s *Settings, v string) error { return setInt(&s.EntriesPerPage, v) },
		get: func(s *Settings) string { return strconv.Itoa(s.EntriesPerPage) },
	},
	"debug_mode": {
		set: func(s *Settings, v string) error { return setBool(&s.DebugMode, v) },
		get: func(s *Settings) string { return strconv.FormatBool(s.DebugMode) },
	},
	"strict_validation": {
		set: func(s *Settings, v string) error { return setBool(&s.StrictValidation, v) },
		get: func(s *Settings) string { return strconv.FormatBool(s.StrictValidation) },
	},
}

// Keys returns every setting key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeKey accepts yaml keys ("decimal_places"), camelCase ("decimalPlaces")
// and dashed forms ("decimal-places").
func normalizeKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '-':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Set assigns one setting from its string form and re-validates. On error s is unchanged.
func (s *Settings) Set(key, value string) error {
	f, ok := fields[normalizeKey(key)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	next := *s
	if err := f.set(&next, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	*s = next
	return nil
}

// Get returns one setting in string form.
func (s *Settings) Get(key string) (string, error) {
	f, ok := fields[normalizeKey(key)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.get(s), nil
}

// LoadDotEnv loads variables from a .env file without overriding variables
// already set. An empty path tries ./.env and ignores it if missing.
func LoadDotEnv(path string) error {
	if path == "" {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from TALLY_* variables found by lookup
// (normally os.LookupEnv).
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, key := range Keys() {
		v, ok := lookup(EnvPrefix + strings.ToUpper(key))
		if !ok {
			continue
		}
		if err := s.Set(key, v); err != nil {
			return fmt.Errorf("from %s%s: %w", EnvPrefix, strings.ToUpper(key), err)
		}
	}
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", v, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", v, err)
	}
	*dst = b
	return nil
}
