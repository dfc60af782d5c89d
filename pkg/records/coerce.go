package records

import (
	"math"
	"strconv"
	"strings"
	"time"

	"horta/entities"
)

// ParseID coerces an identifier cell to integer-or-missing. Integral floats
// ("7.0", "1e2") convert losslessly. ok is false when a non-empty value had
// to be dropped.
func ParseID(raw string) (id *int64, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, true
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, false
	}
	v := int64(f)
	return &v, true
}

// CoerceQuantity applies the harvest quantity policy: a harvested quantity
// cannot be negative. Values round half to even to a whole number; negative,
// NaN and infinite inputs become 0. CoerceQuantity(float64(CoerceQuantity(x)))
// == CoerceQuantity(x).
func CoerceQuantity(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	r := math.RoundToEven(f)
	if r >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(r)
}

// ParseQuantity reads a harvest quantity cell under the CoerceQuantity
// policy. Empty cells are 0. ok is false for non-numeric or negative input.
func ParseQuantity(raw string) (qty int64, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return CoerceQuantity(f), f >= 0 && !math.IsInf(f, 0)
}

// ParseMeasure reads a non-negative measurement (height, area).
func ParseMeasure(raw string) (v *float64, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil, false
	}
	return &f, true
}

var trueValues = map[string]bool{
	"true": true, "1": true, "sim": true, "s": true, "yes": true, "y": true, "t": true, "verdadeiro": true,
}

func ParseBool(raw string) bool {
	return trueValues[strings.ToLower(strings.TrimSpace(raw))]
}

// Day-first layouts follow the source spreadsheets (dd/mm/yyyy).
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
}

// ParseDate leniently parses a calendar date. The result is midnight UTC of
// the date as written; unparseable values are missing.
func ParseDate(raw string) (d *time.Time, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, true
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &day, true
	}
	return nil, false
}

// EventType normalises an absent event type to entities.EventTypeUnspecified.
func EventType(raw string) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}
	return entities.EventTypeUnspecified
}
