package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"horta/pkg/records"
	"horta/pkg/report"
)

const (
	SheetSummary   = "summary"
	SheetBeds      = "beds"
	SheetSpecies   = "species"
	SheetBedStatus = "bed_status"
)

// Sheets lists workbook sheets in the order they are written.
var Sheets = []string{
	SheetSummary,
	string(TablePlantings), string(TableHarvests), string(TableObservations), string(TableEvents),
	SheetBeds, SheetSpecies, SheetBedStatus,
}

// WriteWorkbook writes the filtered tables of b plus the reference tables of
// the snapshot b was built from, one sheet each.
func WriteWorkbook(w io.Writer, b *report.Bundle) error {
	snap := b.Source
	if snap == nil {
		snap = &records.Snapshot{}
	}
	f := excelize.NewFile()
	defer f.Close()

	sheets := map[string][][]any{
		SheetSummary:   summaryRows(b),
		SheetBeds:      bedRows(snap),
		SheetSpecies:   speciesRows(snap),
		SheetBedStatus: bedStatusRows(b),
	}
	for _, t := range []Table{TablePlantings, TableHarvests, TableObservations, TableEvents} {
		head, body, err := rows(t, b)
		if err != nil {
			return err
		}
		sheets[string(t)] = toCells(head, body)
	}

	for i, name := range Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("sheet %s: %w", name, err)
			}
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func toCells(head []string, body [][]string) [][]any {
	out := make([][]any, 0, len(body)+1)
	for _, r := range append([][]string{head}, body...) {
		row := make([]any, len(r))
		for i, v := range r {
			row[i] = v
		}
		out = append(out, row)
	}
	return out
}

func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func summaryRows(b *report.Bundle) [][]any {
	k := b.KPIs
	return [][]any{
		{"metric", "value"},
		{"generated_at", b.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"total_harvested", k.TotalHarvested},
		{"plantings", k.Plantings},
		{"harvested_plantings", k.HarvestedPlantings},
		{"success_rate", optional(k.SuccessRate)},
		{"avg_per_harvested_planting", optional(k.AvgPerHarvestedPlanting)},
		{"observations", k.Observations},
		{"pest_share", optional(k.PestShare)},
		{"events", k.Events},
	}
}

func bedRows(snap *records.Snapshot) [][]any {
	out := [][]any{{"bed_id", "name", "location", "area_m2"}}
	for _, b := range snap.Beds {
		out = append(out, []any{id(b.BedID), b.Name, b.Location, optional(b.AreaM2)})
	}
	return out
}

func speciesRows(snap *records.Snapshot) [][]any {
	out := [][]any{{"species_id", "common_name"}}
	for _, s := range snap.Species {
		out = append(out, []any{id(s.SpeciesID), s.CommonName})
	}
	return out
}

func bedStatusRows(b *report.Bundle) [][]any {
	out := [][]any{{"bed", "plantings", "harvested_plantings", "rate", "status"}}
	for _, s := range b.BedStatus {
		out = append(out, []any{s.Name, s.TotalPlantings, s.HarvestedPlantings, s.Rate, string(s.Status)})
	}
	return out
}
