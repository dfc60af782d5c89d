package serviceImp

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"horta/pkg/records"
	"horta/pkg/relations"
	"horta/pkg/report"
	svc "horta/pkg/report/service"
	"horta/pkg/selection"
)

// state is never mutated once published.
type state struct {
	view     *relations.View
	warnings []records.Warning
}

type reportSvc struct {
	src records.Source
	cur atomic.Pointer[state]
	now func() time.Time
}

func New(src records.Source) svc.ReportService {
	return &reportSvc{src: src, now: time.Now}
}

func (s *reportSvc) Reload(ctx context.Context) (*svc.LoadStatus, error) {
	snap, warns, err := s.src.Load(ctx)
	if err != nil {
		log.Printf("[report] reload failed: %v", err)
		return nil, err
	}
	if snap.LoadedAt.IsZero() {
		snap.LoadedAt = s.now()
	}
	for _, w := range warns {
		log.Printf("[report] warning: %s", w)
	}
	s.cur.Store(&state{view: relations.Build(snap), warnings: warns})

	counts := snap.Counts()
	log.Printf("[report] loaded %v (%d warnings)", counts, len(warns))
	return &svc.LoadStatus{LoadedAt: snap.LoadedAt, Counts: counts, Warnings: len(warns)}, nil
}

func (s *reportSvc) Ready() bool { return s.cur.Load() != nil }

func (s *reportSvc) load() (*state, error) {
	st := s.cur.Load()
	if st == nil {
		return nil, svc.ErrNotReady
	}
	return st, nil
}

func (s *reportSvc) Build(c selection.Criteria) (*report.Bundle, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	return report.Assemble(st.view, c, s.now())
}

func (s *reportSvc) BedReport(c selection.Criteria, bed string) (*report.BedReport, error) {
	b, err := s.Build(c)
	if err != nil {
		return nil, err
	}
	return report.NewBedReport(b, bed)
}

func (s *reportSvc) Filters() (relations.Options, error) {
	st, err := s.load()
	if err != nil {
		return relations.Options{}, err
	}
	return st.view.Options(), nil
}

func (s *reportSvc) Warnings() []records.Warning {
	st := s.cur.Load()
	if st == nil {
		return nil
	}
	return append([]records.Warning(nil), st.warnings...)
}

func (s *reportSvc) HasPlanting(id int64) bool {
	st := s.cur.Load()
	if st == nil {
		return false
	}
	_, ok := st.view.Planting(id)
	return ok
}
