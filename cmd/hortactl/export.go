package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"horta/pkg/export"
	"horta/pkg/fileutil"
	"horta/pkg/report"
)

var (
	exportFilters filterFlags
	exportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered tables to an XLSX workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if exportOut == "" {
			return errors.New("--out is required")
		}
		b, err := exportFilters.bundle(cmd.Context())
		if err != nil {
			return err
		}
		if err := writeWorkbook(exportOut, b); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d plantings)\n", exportOut, b.KPIs.Plantings)
		return nil
	},
}

// writeWorkbook replaces path only once the whole workbook is on disk.
func writeWorkbook(path string, b *report.Bundle) error {
	err := fileutil.WriteScoped(path, func(w io.Writer) error {
		return export.WriteWorkbook(w, b)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func init() {
	exportFilters.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output .xlsx file")
	rootCmd.AddCommand(exportCmd)
}
