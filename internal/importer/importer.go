// Package importer maps file formats to the journal codecs used by import and
// export.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/model"
)

// Parser converts between a file format and journal entries.
type Parser interface {
	Parse(r io.Reader) ([]model.Entry, error)
	Write(w io.Writer, entries []model.Entry) error
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the parser for format, or an error naming the supported formats.
func (r *Registry) Lookup(format string) (Parser, error) {
	if p := r.Get(format); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("unsupported format %q (supported: %s)", format, strings.Join(r.Formats(), ", "))
}

// ForFile picks a parser from a file extension. An explicit format wins.
func (r *Registry) ForFile(path, format string) (Parser, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
		if format == "" {
			return nil, fmt.Errorf("cannot infer format of %s: no file extension", path)
		}
	}
	return r.Lookup(format)
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(JSONParser{})
	r.Register(CSVParser{})
	return r
}

// JSONParser reads and writes the JSON journal snapshot.
type JSONParser struct{}

// Format returns the parser name.
func (JSONParser) Format() string { return "json" }

// Parse decodes a JSON array of entries.
func (JSONParser) Parse(r io.Reader) ([]model.Entry, error) { return journal.ReadJSON(r) }

// Write encodes entries as an indented JSON array.
func (JSONParser) Write(w io.Writer, entries []model.Entry) error {
	return journal.WriteJSON(w, entries)
}

// CSVParser reads and writes headerless journal CSV.
type CSVParser struct{}

// Format returns the parser name.
func (CSVParser) Format() string { return "csv" }

// Parse decodes one entry per CSV line.
func (CSVParser) Parse(r io.Reader) ([]model.Entry, error) { return journal.ReadCSV(r) }

// Write encodes entries one per line in fixed field order.
func (CSVParser) Write(w io.Writer, entries []model.Entry) error {
	return journal.WriteCSV(w, entries)
}
