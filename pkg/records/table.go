package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
)

// csvTable is one source file read into memory with a normalised header index.
type csvTable struct {
	source string
	header map[string]int
	rows   [][]string
}

// Header normaliser: handles BOM, case, spaces, dashes and underscores.
func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// readTable returns (nil, warnings, nil) when the file does not exist.
func readTable(fsys fs.FS, name string) (*csvTable, []Warning, error) {
	if name == "" {
		return nil, []Warning{{Source: name, Kind: SourceMissing, Message: "no file configured"}}, nil
	}
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, []Warning{{Source: name, Kind: SourceMissing, Message: "file not found, loaded as empty table"}}, nil
		}
		return nil, nil, &LoadError{Source: name, Err: err}
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// empty file: no header, no rows
			return &csvTable{source: name, header: map[string]int{}}, nil, nil
		}
		return nil, nil, &LoadError{Source: name, Err: fmt.Errorf("read header: %w", err)}
	}
	t := &csvTable{source: name, header: make(map[string]int, len(head))}
	for i, h := range head {
		if _, dup := t.header[norm(h)]; !dup {
			t.header[norm(h)] = i
		}
	}

	var warns []Warning
	skipped := 0
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				// an unterminated quote consumes every line up to EOF
				skipped += perr.Line - perr.StartLine + 1
				continue
			}
			return nil, nil, &LoadError{Source: name, Err: err}
		}
		t.rows = append(t.rows, rec)
	}
	if skipped > 0 {
		warns = append(warns, Warning{Source: name, Kind: MalformedRow, Count: skipped,
			Message: fmt.Sprintf("%d lines skipped as malformed", skipped)})
	}
	return t, warns, nil
}

// col finds the first alias present in the header, or -1.
func (t *csvTable) col(aliases ...string) int {
	for _, a := range aliases {
		if idx, ok := t.header[norm(a)]; ok {
			return idx
		}
	}
	return -1
}

// get guards against short rows and absent columns.
func get(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

// coercions counts per-column coercion failures for one source.
type coercions struct {
	source   string
	failures map[string]int
}

func newCoercions(source string) *coercions {
	return &coercions{source: source, failures: map[string]int{}}
}

func (c *coercions) note(column string, ok bool) {
	if !ok {
		c.failures[column]++
	}
}

func (c *coercions) warnings() []Warning {
	cols := make([]string, 0, len(c.failures))
	for col := range c.failures {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	out := make([]Warning, 0, len(cols))
	for _, col := range cols {
		n := c.failures[col]
		out = append(out, Warning{Source: c.source, Kind: CoercionFailure, Column: col, Count: n,
			Message: fmt.Sprintf("%d values in %s could not be coerced", n, col)})
	}
	return out
}

// requireColumns warns about key columns that are absent from the header.
func (t *csvTable) requireColumns(cols map[string]int) []Warning {
	var out []Warning
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if cols[name] == -1 {
			out = append(out, Warning{Source: t.source, Kind: MissingColumn, Column: name,
				Message: fmt.Sprintf("column %s not found, values treated as missing", name)})
		}
	}
	return out
}
