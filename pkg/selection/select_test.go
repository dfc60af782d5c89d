package selection

import (
	"errors"
	"testing"
	"time"

	"horta/entities"
	"horta/pkg/records"
	"horta/pkg/relations"
)

func i64(v int64) *int64 { return &v }

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func fixture() *records.Snapshot {
	return &records.Snapshot{
		Beds:    []entities.Bed{{BedID: i64(1), Name: "A"}, {BedID: i64(2), Name: "B"}},
		Species: []entities.Species{{SpeciesID: i64(1), CommonName: "Tomate"}, {SpeciesID: i64(2), CommonName: "Alface"}},
		Plantings: []entities.Planting{
			{PlantingID: i64(100), BedID: i64(1), SpeciesID: i64(1), PlantingDate: day(2025, 1, 1), Responsible: "Ana", Method: "semente", Notes: "lote inicial"},
			{PlantingID: i64(101), BedID: i64(2), SpeciesID: i64(2), PlantingDate: day(2025, 2, 1), Method: "muda"},
			{PlantingID: i64(102), BedID: i64(1), SpeciesID: i64(2), PlantingDate: day(2025, 3, 1), Responsible: "Bia", Method: "muda"},
			{PlantingID: i64(103), BedID: i64(9), SpeciesID: i64(1), PlantingDate: nil, Responsible: "Ana"},
		},
		Observations: []entities.Observation{
			{PlantingID: i64(101), Comments: "Pulgões nas folhas"},
			{PlantingID: i64(102), Comments: "ok"},
			{PlantingID: nil, Comments: "pulgões soltos"},
		},
		Harvests: []entities.Harvest{
			{PlantingID: i64(100), Quantity: 5},
			{PlantingID: i64(102), Quantity: 0},
			{PlantingID: nil, Quantity: 3},
		},
		Events: []entities.ManagementEvent{
			{PlantingID: i64(100), EventType: "rega"},
			{PlantingID: i64(101), EventType: "adubo"},
		},
	}
}

func run(t *testing.T, c Criteria) (Selection, *records.Snapshot) {
	t.Helper()
	snap := fixture()
	sel, err := Select(relations.Build(snap), snap.Harvests, snap.Observations, c)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	return sel, snap
}

func equalIDs(got []int64, want ...int64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSelectWithoutFiltersKeepsEverything(t *testing.T) {
	sel, _ := run(t, Criteria{})
	if !equalIDs(sel.PlantingIDs, 100, 101, 102, 103) {
		t.Fatalf("ids = %v", sel.PlantingIDs)
	}
	if len(sel.Plantings) != 4 {
		t.Fatalf("plantings = %d", len(sel.Plantings))
	}
}

func TestSelectFilters(t *testing.T) {
	cases := []struct {
		name string
		c    Criteria
		want []int64
	}{
		{"species", Criteria{Species: "Alface"}, []int64{101, 102}},
		{"species all", Criteria{Species: "Todas"}, []int64{100, 101, 102, 103}},
		{"bed", Criteria{Bed: "A"}, []int64{100, 102}},
		{"responsible", Criteria{Responsible: "Ana"}, []int64{100, 103}},
		{"responsible blank bucket", Criteria{Responsible: relations.NotAvailable}, []int64{101}},
		{"method", Criteria{Method: "muda"}, []int64{101, 102}},
		{"date range excludes missing dates", Criteria{DateRange: &DateRange{Start: *day(2025, 1, 1), End: *day(2025, 2, 1)}}, []int64{100, 101}},
		{"conjunction", Criteria{Bed: "A", Method: "muda"}, []int64{102}},
		{"unknown species", Criteria{Species: "Manjericão"}, []int64{}},
	}
	for _, tc := range cases {
		sel, _ := run(t, tc.c)
		if !equalIDs(sel.PlantingIDs, tc.want...) {
			t.Fatalf("%s: ids = %v, want %v", tc.name, sel.PlantingIDs, tc.want)
		}
	}
}

func TestActiveOnlyIgnoresQuantity(t *testing.T) {
	sel, _ := run(t, Criteria{ActiveOnly: true})
	// 100 has quantity 5, 102 has a zero-quantity harvest: both count as harvested
	if !equalIDs(sel.PlantingIDs, 101, 103) {
		t.Fatalf("ids = %v", sel.PlantingIDs)
	}
}

func TestSearchTextMatchesNotesOrObservationComments(t *testing.T) {
	sel, _ := run(t, Criteria{SearchText: "  PULGÕES "})
	if !equalIDs(sel.PlantingIDs, 101) {
		t.Fatalf("comment match: ids = %v", sel.PlantingIDs)
	}
	sel, _ = run(t, Criteria{SearchText: "Lote"})
	if !equalIDs(sel.PlantingIDs, 100) {
		t.Fatalf("notes match: ids = %v", sel.PlantingIDs)
	}
}

func TestInvalidDateRangeFailsBeforeSelecting(t *testing.T) {
	snap := fixture()
	_, err := Select(relations.Build(snap), nil, nil, Criteria{DateRange: &DateRange{Start: *day(2025, 5, 1), End: *day(2025, 1, 1)}})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("err = %v", err)
	}
	if _, err := NewDateRange(*day(2025, 5, 1), *day(2025, 1, 1)); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("NewDateRange err = %v", err)
	}
	if r, err := NewDateRange(*day(2025, 1, 1), *day(2025, 1, 1)); err != nil || !r.Contains(*day(2025, 1, 1)) {
		t.Fatalf("single-day range should be valid and inclusive")
	}
}

func TestPropagate(t *testing.T) {
	sel, snap := run(t, Criteria{Bed: "A"})
	hs := Harvests(sel, snap.Harvests)
	if len(hs) != 2 {
		t.Fatalf("harvests = %+v", hs)
	}
	for _, h := range hs {
		if h.PlantingID == nil {
			t.Fatalf("row with missing planting id leaked through")
		}
	}
	if ev := Events(sel, snap.Events); len(ev) != 1 || ev[0].EventType != "rega" {
		t.Fatalf("events = %+v", ev)
	}
	if obs := Observations(sel, snap.Observations); len(obs) != 1 {
		t.Fatalf("observations = %+v", obs)
	}
}

func TestPropagateEmptySelectionIsEmpty(t *testing.T) {
	for _, c := range []Criteria{
		{Species: "Manjericão"},
		{Bed: "Z"},
		{SearchText: "nothing matches this"},
		{DateRange: &DateRange{Start: *day(2030, 1, 1), End: *day(2030, 12, 31)}},
	} {
		sel, snap := run(t, c)
		if !sel.Empty() {
			t.Fatalf("%+v: expected empty selection", c)
		}
		if h := Harvests(sel, snap.Harvests); h == nil || len(h) != 0 {
			t.Fatalf("%+v: harvests must be empty, got %v", c, h)
		}
		if o := Observations(sel, snap.Observations); len(o) != 0 {
			t.Fatalf("%+v: observations must be empty", c)
		}
		if e := Events(sel, snap.Events); len(e) != 0 {
			t.Fatalf("%+v: events must be empty", c)
		}
	}
}
