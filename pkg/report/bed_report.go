package report

import (
	"errors"
	"fmt"
	"time"

	"horta/pkg/aggregate"
	"horta/pkg/relations"
	"horta/pkg/selection"
)

var ErrUnknownBed = errors.New("unknown bed")

// BedReport is everything the per-bed printable report shows.
type BedReport struct {
	Bed            aggregate.BedState           `json:"bed"`
	Plantings      []relations.EnrichedPlanting `json:"plantings"`
	TotalHarvested int64                        `json:"total_harvested"`
	TopSpecies     []aggregate.GroupTotal       `json:"top_species"`
	Criteria       selection.Criteria           `json:"criteria"`
	GeneratedAt    time.Time                    `json:"generated_at"`
}

// NewBedReport narrows b to the bed called name. The bed must exist in the
// beds table; a bed with no selected plantings yields an empty report.
func NewBedReport(b *Bundle, name string) (*BedReport, error) {
	var (
		st    aggregate.BedState
		found bool
	)
	for _, s := range b.BedStatus {
		if s.Name == name {
			st, found = s, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBed, name)
	}

	r := &BedReport{Bed: st, Criteria: b.Criteria, GeneratedAt: b.GeneratedAt, Plantings: []relations.EnrichedPlanting{}}
	for _, p := range b.Tables.Plantings {
		if p.BedName != nil && *p.BedName == name {
			r.Plantings = append(r.Plantings, p)
		}
	}
	var rows []aggregate.HarvestRow
	for _, h := range b.Tables.Harvests {
		if h.BedName != nil && *h.BedName == name {
			rows = append(rows, h)
			r.TotalHarvested += h.Quantity
		}
	}
	r.TopSpecies = aggregate.TopN(aggregate.HarvestBySpecies(rows), bedTopSpeciesLimit)
	return r, nil
}
