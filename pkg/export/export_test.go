package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"horta/entities"
	"horta/pkg/records"
	"horta/pkg/relations"
	"horta/pkg/report"
	"horta/pkg/selection"
)

func i64(v int64) *int64 { return &v }

func bundle(t *testing.T) (*report.Bundle, *records.Snapshot) {
	t.Helper()
	d := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	area := 10.0
	snap := &records.Snapshot{
		Beds:      []entities.Bed{{BedID: i64(1), Name: "A", AreaM2: &area}},
		Species:   []entities.Species{{SpeciesID: i64(1), CommonName: "Tomate"}},
		Plantings: []entities.Planting{{PlantingID: i64(100), BedID: i64(1), SpeciesID: i64(1), PlantingDate: &d, Notes: "linha, com vírgula"}},
		Observations: []entities.Observation{
			{PlantingID: i64(100), Comments: "ok"},
		},
		Harvests: []entities.Harvest{{PlantingID: i64(100), HarvestDate: &d, Quantity: 5}},
		Events:   []entities.ManagementEvent{{PlantingID: i64(100), EventType: "rega"}},
	}
	b, err := report.Assemble(relations.Build(snap), selection.Criteria{}, d)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return b, snap
}

func TestWriteCSV(t *testing.T) {
	b, _ := bundle(t)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, TablePlantings, b); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("rows = %d", len(recs))
	}
	if recs[0][0] != "planting_id" || recs[1][0] != "100" || recs[1][2] != "A" || recs[1][8] != "linha, com vírgula" {
		t.Fatalf("rows = %v", recs)
	}
	// responsible was blank and stays blank
	if recs[1][6] != "" {
		t.Fatalf("responsible = %q", recs[1][6])
	}
}

func TestWriteCSVHarvestsAndEvents(t *testing.T) {
	b, _ := bundle(t)
	for _, tbl := range []Table{TableHarvests, TableEvents, TableObservations} {
		var buf bytes.Buffer
		if err := WriteCSV(&buf, tbl, b); err != nil {
			t.Fatalf("%s: %v", tbl, err)
		}
		recs, err := csv.NewReader(&buf).ReadAll()
		if err != nil || len(recs) != 2 {
			t.Fatalf("%s: rows = %v, err = %v", tbl, recs, err)
		}
		// ids missing in the source render as empty cells
		if recs[1][0] != "" {
			t.Fatalf("%s: id cell = %q", tbl, recs[1][0])
		}
	}
}

func TestParseTable(t *testing.T) {
	if got, err := ParseTable(" Harvests "); err != nil || got != TableHarvests {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := ParseTable("beds"); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("err = %v", err)
	}
}

func TestWriteWorkbookHasAllSheets(t *testing.T) {
	b, snap := bundle(t)
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, b); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	got := f.GetSheetList()
	if len(got) != len(Sheets) {
		t.Fatalf("sheets = %v", got)
	}
	for i := range Sheets {
		if got[i] != Sheets[i] {
			t.Fatalf("sheet %d = %q, want %q", i, got[i], Sheets[i])
		}
	}
	v, err := f.GetCellValue(SheetSummary, "B3")
	if err != nil || v != "5" {
		t.Fatalf("total_harvested cell = %q, %v", v, err)
	}
	v, _ = f.GetCellValue(SheetBedStatus, "E2")
	if v != "good" {
		t.Fatalf("bed status = %q", v)
	}
	beds, err := f.GetRows(SheetBeds)
	if err != nil || len(beds) != len(snap.Beds)+1 {
		t.Fatalf("beds sheet = %v, %v", beds, err)
	}
}
