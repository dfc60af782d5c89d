// Package report assembles the Report Bundle: the single immutable value that
// renderers and exporters consume for one set of filter criteria.
package report

import (
	"time"

	"horta/entities"
	"horta/pkg/aggregate"
	"horta/pkg/records"
	"horta/pkg/relations"
	"horta/pkg/selection"
)

const (
	topSpeciesLimit    = 10
	bedTopSpeciesLimit = 8
)

type KPIs struct {
	TotalHarvested          int64    `json:"total_harvested"`
	Plantings               int      `json:"plantings"`
	HarvestedPlantings      int      `json:"harvested_plantings"`
	SuccessRate             *float64 `json:"success_rate"`
	AvgPerHarvestedPlanting *float64 `json:"avg_per_harvested_planting"`
	Observations            int      `json:"observations"`
	PestShare               *float64 `json:"pest_share"`
	Events                  int      `json:"events"`
}

// Tables are the selected plantings and the child rows propagated from them.
type Tables struct {
	Plantings    []relations.EnrichedPlanting `json:"plantings"`
	Observations []entities.Observation       `json:"observations"`
	Harvests     []aggregate.HarvestRow       `json:"harvests"`
	Events       []entities.ManagementEvent   `json:"events"`
}

type Bundle struct {
	Criteria    selection.Criteria `json:"criteria"`
	GeneratedAt time.Time          `json:"generated_at"`
	KPIs        KPIs               `json:"kpis"`

	HarvestByBed       []aggregate.GroupTotal      `json:"harvest_by_bed"`
	HarvestBySpecies   []aggregate.GroupTotal      `json:"harvest_by_species"`
	TopSpecies         []aggregate.GroupTotal      `json:"top_species"`
	SuccessBySpecies   []aggregate.SpeciesRate     `json:"success_by_species"`
	HarvestSummary     []aggregate.SpeciesHarvest  `json:"harvest_summary"`
	BedStatus          []aggregate.BedState        `json:"bed_status"`
	Productivity       []aggregate.BedProductivity `json:"productivity"`
	DaysToFirstHarvest []aggregate.SpeciesDays     `json:"days_to_first_harvest"`
	PestsBySpecies     []aggregate.GroupCount      `json:"pests_by_species"`
	EventsByType       []aggregate.GroupCount      `json:"events_by_type"`

	MonthlyHarvest []aggregate.MonthPoint  `json:"monthly_harvest"`
	EventsByMonth  aggregate.EventSeries   `json:"events_by_month"`
	EventHeatmap   []aggregate.BedDayCount `json:"event_heatmap"`
	HeightByDate   []aggregate.DatePoint   `json:"height_by_date"`
	Timeline       []aggregate.TimelineRow `json:"timeline"`

	Tables Tables `json:"tables"`

	// Source is the snapshot the bundle was computed from.
	Source *records.Snapshot `json:"-"`
}

// Assemble runs one full recompute over view for c. Only an invalid date
// range fails, and it fails before anything is computed. now stamps the
// bundle and closes timeline bars of plantings without a harvest.
func Assemble(view *relations.View, c selection.Criteria, now time.Time) (*Bundle, error) {
	snap := view.Snapshot()
	sel, err := selection.Select(view, snap.Harvests, snap.Observations, c)
	if err != nil {
		return nil, err
	}
	harvests := selection.Harvests(sel, snap.Harvests)
	observations := selection.Observations(sel, snap.Observations)
	events := selection.Events(sel, snap.Events)
	ps := sel.Plantings
	rows := aggregate.JoinHarvests(ps, harvests)

	b := &Bundle{Criteria: c, GeneratedAt: now, Source: snap}
	b.KPIs = KPIs{
		TotalHarvested:          aggregate.TotalHarvested(harvests),
		Plantings:               aggregate.PlantingCount(ps),
		HarvestedPlantings:      aggregate.HarvestedPlantingCount(harvests),
		SuccessRate:             aggregate.Ptr(aggregate.SuccessRate(ps, harvests)),
		AvgPerHarvestedPlanting: aggregate.Ptr(aggregate.AverageQuantityPerHarvestedPlanting(harvests)),
		Observations:            len(observations),
		PestShare:               aggregate.Ptr(aggregate.PestShare(observations)),
		Events:                  len(events),
	}

	b.HarvestByBed = aggregate.HarvestByBed(rows)
	b.HarvestBySpecies = aggregate.HarvestBySpecies(rows)
	b.TopSpecies = aggregate.TopN(b.HarvestBySpecies, topSpeciesLimit)
	b.SuccessBySpecies = aggregate.SuccessRateBySpecies(ps, harvests)
	b.HarvestSummary = aggregate.HarvestSummaryBySpecies(ps, harvests)
	b.BedStatus = aggregate.BedStatus(view.Beds(), ps, harvests)
	b.Productivity = aggregate.ProductivityPerArea(view.Beds(), b.HarvestByBed)
	b.DaysToFirstHarvest = aggregate.DaysToFirstHarvest(ps, harvests)
	b.PestsBySpecies = aggregate.PestsBySpecies(ps, observations)
	b.EventsByType = aggregate.EventsByType(events)

	b.MonthlyHarvest = aggregate.MonthlyHarvest(clipHarvests(harvests, c.DateRange))
	b.EventsByMonth = aggregate.EventsByMonth(events)
	b.EventHeatmap = aggregate.EventsByBedDay(ps, clipEvents(events, c.DateRange))
	b.HeightByDate = aggregate.AverageHeightByDate(observations)
	b.Timeline = aggregate.Timeline(ps, harvests, now)

	b.Tables = Tables{Plantings: ps, Observations: observations, Harvests: rows, Events: events}
	return b, nil
}

// clipHarvests keeps harvests dated inside r. A nil range keeps everything.
func clipHarvests(hs []entities.Harvest, r *selection.DateRange) []entities.Harvest {
	if r == nil {
		return hs
	}
	out := make([]entities.Harvest, 0, len(hs))
	for _, h := range hs {
		if h.HarvestDate != nil && r.Contains(*h.HarvestDate) {
			out = append(out, h)
		}
	}
	return out
}

// clipEvents keeps events dated inside r. A nil range keeps everything.
func clipEvents(es []entities.ManagementEvent, r *selection.DateRange) []entities.ManagementEvent {
	if r == nil {
		return es
	}
	out := make([]entities.ManagementEvent, 0, len(es))
	for _, e := range es {
		if e.EventDate != nil && r.Contains(*e.EventDate) {
			out = append(out, e)
		}
	}
	return out
}
