package export

import (
	"encoding/csv"
	"io"

	"horta/pkg/report"
)

// WriteCSV writes one filtered table of b. Missing values are empty cells.
func WriteCSV(w io.Writer, t Table, b *report.Bundle) error {
	head, body, err := rows(t, b)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(head); err != nil {
		return err
	}
	if err := cw.WriteAll(body); err != nil {
		return err
	}
	return cw.Error()
}
