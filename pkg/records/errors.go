package records

import "fmt"

type WarningKind string

const (
	// SourceMissing: an expected table is absent; it loads as empty.
	SourceMissing WarningKind = "source_missing"
	// CoercionFailure: values in a column could not be parsed and were stored as missing (or 0 for quantities).
	CoercionFailure WarningKind = "coercion_failure"
	MalformedRow    WarningKind = "malformed_row"
	MissingColumn   WarningKind = "missing_column"
)

// Warning is a non-fatal load problem reported to the caller.
type Warning struct {
	Source  string      `json:"source"`
	Kind    WarningKind `json:"kind"`
	Column  string      `json:"column,omitempty"`
	Count   int         `json:"count,omitempty"`
	Message string      `json:"message"`
}

func (w Warning) String() string { return w.Source + ": " + w.Message }

// LoadError is returned when a source exists but cannot be read at all.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Source, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }
