package serviceImp

import (
	"context"
	"errors"
	"testing"
	"time"

	"horta/entities"
	"horta/pkg/records"
	svc "horta/pkg/report/service"
	"horta/pkg/selection"
)

type fakeSource struct {
	snap  *records.Snapshot
	warns []records.Warning
	err   error
	calls int
}

func (f *fakeSource) Load(context.Context) (*records.Snapshot, []records.Warning, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	// hand out a copy so reloads never share a snapshot
	cp := *f.snap
	return &cp, f.warns, nil
}

func i64(v int64) *int64 { return &v }

func source() *fakeSource {
	return &fakeSource{
		snap: &records.Snapshot{
			Beds:      []entities.Bed{{BedID: i64(1), Name: "A"}},
			Species:   []entities.Species{{SpeciesID: i64(1), CommonName: "Tomate"}},
			Plantings: []entities.Planting{{PlantingID: i64(100), BedID: i64(1), SpeciesID: i64(1), Responsible: "Ana"}},
			Harvests:  []entities.Harvest{{PlantingID: i64(100), Quantity: 4}},
		},
		warns: []records.Warning{{Source: "eventos_manejo.csv", Kind: records.SourceMissing}},
	}
}

func snapshotOf(t *testing.T, s svc.ReportService) *records.Snapshot {
	t.Helper()
	b, err := s.Build(selection.Criteria{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return b.Source
}

func TestNotReadyBeforeReload(t *testing.T) {
	s := New(source())
	if s.Ready() {
		t.Fatalf("ready before reload")
	}
	if _, err := s.Build(selection.Criteria{}); !errors.Is(err, svc.ErrNotReady) {
		t.Fatalf("build err = %v", err)
	}
	if _, err := s.Filters(); !errors.Is(err, svc.ErrNotReady) {
		t.Fatalf("filters err = %v", err)
	}
	if s.Warnings() != nil {
		t.Fatalf("warnings before reload")
	}
}

func TestReloadAndBuild(t *testing.T) {
	src := source()
	s := New(src)
	st, err := s.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if st.Counts[records.TablePlantings] != 1 || st.Warnings != 1 || st.LoadedAt.IsZero() {
		t.Fatalf("status = %+v", st)
	}
	b, err := s.Build(selection.Criteria{})
	if err != nil || b.KPIs.TotalHarvested != 4 {
		t.Fatalf("bundle = %+v, %v", b, err)
	}
	f, _ := s.Filters()
	if len(f.Responsibles) != 1 || f.Responsibles[0] != "Ana" {
		t.Fatalf("filters = %+v", f)
	}
	if w := s.Warnings(); len(w) != 1 || w[0].Kind != records.SourceMissing {
		t.Fatalf("warnings = %+v", w)
	}
	if !s.HasPlanting(100) || s.HasPlanting(7) {
		t.Fatalf("planting lookup wrong")
	}
	if r, err := s.BedReport(selection.Criteria{}, "A"); err != nil || r.TotalHarvested != 4 {
		t.Fatalf("bed report = %+v, %v", r, err)
	}
}

func TestFailedReloadKeepsPreviousState(t *testing.T) {
	src := source()
	s := New(src)
	if _, err := s.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	before := snapshotOf(t, s)

	src.err = &records.LoadError{Source: "plantios.csv", Err: errors.New("boom")}
	if _, err := s.Reload(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if after := snapshotOf(t, s); after != before {
		t.Fatalf("state replaced after failed reload")
	}
}

func TestReloadSwapsSnapshot(t *testing.T) {
	src := source()
	s := New(src).(*reportSvc)
	s.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	_, _ = s.Reload(context.Background())
	first := snapshotOf(t, s)

	src.snap.Harvests = append(src.snap.Harvests, entities.Harvest{PlantingID: i64(100), Quantity: 6})
	_, _ = s.Reload(context.Background())
	second := snapshotOf(t, s)
	if first == second || len(first.Harvests) != 1 || len(second.Harvests) != 2 {
		t.Fatalf("reload must publish a new snapshot")
	}
	b, _ := s.Build(selection.Criteria{})
	if b.KPIs.TotalHarvested != 10 || !b.GeneratedAt.Equal(s.now()) {
		t.Fatalf("bundle = %+v", b.KPIs)
	}
}

func TestBundleKeepsItsSnapshotAcrossReload(t *testing.T) {
	src := source()
	s := New(src)
	_, _ = s.Reload(context.Background())
	old, err := s.Build(selection.Criteria{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	src.snap.Beds = append(src.snap.Beds, entities.Bed{BedID: i64(2), Name: "B"})
	_, _ = s.Reload(context.Background())
	fresh, _ := s.Build(selection.Criteria{})

	if len(old.Source.Beds) != 1 || len(old.BedStatus) != 1 {
		t.Fatalf("old bundle mixed with reloaded state: %d beds", len(old.Source.Beds))
	}
	if len(fresh.Source.Beds) != 2 || len(fresh.BedStatus) != 2 {
		t.Fatalf("fresh bundle = %d beds", len(fresh.Source.Beds))
	}
}
