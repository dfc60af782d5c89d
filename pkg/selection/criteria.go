package selection

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateRange is the only criteria error; it is raised before any
// selection work starts.
var ErrInvalidDateRange = errors.New("invalid date range: start after end")

// All is the explicit "no constraint" value for the name filters.
const All = "all"

// DateRange is inclusive on both ends and compares calendar dates only.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewDateRange(start, end time.Time) (*DateRange, error) {
	r := &DateRange{Start: dateOf(start), End: dateOf(end)}
	if r.Start.After(r.End) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidDateRange, r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	return r, nil
}

func (r DateRange) Contains(d time.Time) bool {
	day := dateOf(d)
	return !day.Before(dateOf(r.Start)) && !day.After(dateOf(r.End))
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Criteria is the filter configuration. Zero values mean "no constraint":
// a nil DateRange covers the whole observed range, and an empty name filter
// is the same as All.
type Criteria struct {
	DateRange   *DateRange `json:"date_range,omitempty"`
	Species     string     `json:"species,omitempty"`
	Bed         string     `json:"bed,omitempty"`
	Responsible string     `json:"responsible,omitempty"`
	Method      string     `json:"method,omitempty"`
	ActiveOnly  bool       `json:"active_only,omitempty"`
	SearchText  string     `json:"search_text,omitempty"`
}

func (c Criteria) Validate() error {
	if c.DateRange != nil && dateOf(c.DateRange.Start).After(dateOf(c.DateRange.End)) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidDateRange,
			c.DateRange.Start.Format("2006-01-02"), c.DateRange.End.Format("2006-01-02"))
	}
	return nil
}

// IsAll reports whether a name filter is unconstrained. The Portuguese
// labels used by the garden spreadsheets are accepted too.
func IsAll(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", All, "todas", "todos":
		return true
	}
	return false
}
