package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"horta/pkg/report"
)

var summaryFilters filterFlags

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the KPIs and bed status for the given filters",
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := summaryFilters.bundle(cmd.Context())
		if err != nil {
			return err
		}
		return printSummary(cmd.OutOrStdout(), b)
	},
}

func init() {
	summaryFilters.register(summaryCmd)
	rootCmd.AddCommand(summaryCmd)
}

func ratio(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

func printSummary(out io.Writer, b *report.Bundle) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	k := b.KPIs
	fmt.Fprintf(tw, "total harvested\t%d\n", k.TotalHarvested)
	fmt.Fprintf(tw, "plantings\t%d\n", k.Plantings)
	fmt.Fprintf(tw, "harvested plantings\t%d\n", k.HarvestedPlantings)
	fmt.Fprintf(tw, "success rate\t%s\n", ratio(k.SuccessRate))
	fmt.Fprintf(tw, "observations\t%d\n", k.Observations)
	fmt.Fprintf(tw, "pest share\t%s\n", ratio(k.PestShare))
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "bed\tplantings\tharvested\trate\tstatus")
	for _, s := range b.BedStatus {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.0f%%\t%s\n", s.Name, s.TotalPlantings, s.HarvestedPlantings, s.Rate*100, s.Status)
	}
	return tw.Flush()
}
