package report

import (
	"fmt"
	"time"
)

const isoDate = "2006-01-02"

// Range is an inclusive date range over ISO date strings. An empty bound is
// open-ended. Comparison is lexical, which matches chronological order for
// "YYYY-MM-DD" dates.
type Range struct {
	From string
	To   string
}

// All is the unbounded range.
var All = Range{}

// Contains reports whether date falls inside the range.
func (r Range) Contains(date string) bool {
	return (r.From == "" || date >= r.From) && (r.To == "" || date <= r.To)
}

// IsOpen reports whether neither bound is set.
func (r Range) IsOpen() bool {
	return r.From == "" && r.To == ""
}

func (r Range) String() string {
	if r.IsOpen() {
		return "all dates"
	}
	from, to := r.From, r.To
	if from == "" {
		from = "beginning"
	}
	if to == "" {
		to = "end"
	}
	return from + " to " + to
}

// FiscalYear returns the range of the fiscal year that starts in startMonth
// of year. With startMonth 4, fiscal year 2024 runs 2024-04-01..2025-03-31.
func FiscalYear(year, startMonth int) (Range, error) {
	if startMonth < 1 || startMonth > 12 {
		return Range{}, fmt.Errorf("fiscal year start month %d out of range 1..12", startMonth)
	}
	start := time.Date(year, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, -1)
	return Range{From: start.Format(isoDate), To: end.Format(isoDate)}, nil
}
