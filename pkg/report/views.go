package report

import (
	"errors"
	"fmt"
	"strings"

	"horta/entities"
	"horta/pkg/aggregate"
	"horta/pkg/relations"
)

// ViewName selects which part of a bundle a page renders. The set is closed.
type ViewName string

const (
	ViewDashboard    ViewName = "dashboard"
	ViewPlantings    ViewName = "plantings"
	ViewObservations ViewName = "observations"
	ViewHarvests     ViewName = "harvests"
	ViewManagement   ViewName = "management"
	ViewExport       ViewName = "export"
	ViewReports      ViewName = "reports"
)

var ErrUnknownView = errors.New("unknown view")

var views = []ViewName{ViewDashboard, ViewPlantings, ViewObservations, ViewHarvests, ViewManagement, ViewExport, ViewReports}

func Views() []ViewName { return append([]ViewName(nil), views...) }

func ParseView(s string) (ViewName, error) {
	v := ViewName(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range views {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

type DashboardView struct {
	KPIs               KPIs                        `json:"kpis"`
	BedStatus          []aggregate.BedState        `json:"bed_status"`
	MonthlyHarvest     []aggregate.MonthPoint      `json:"monthly_harvest"`
	HarvestByBed       []aggregate.GroupTotal      `json:"harvest_by_bed"`
	TopSpecies         []aggregate.GroupTotal      `json:"top_species"`
	SuccessBySpecies   []aggregate.SpeciesRate     `json:"success_by_species"`
	DaysToFirstHarvest []aggregate.SpeciesDays     `json:"days_to_first_harvest"`
	EventsByMonth      aggregate.EventSeries       `json:"events_by_month"`
	Productivity       []aggregate.BedProductivity `json:"productivity"`
}

type PlantingsView struct {
	Plantings []relations.EnrichedPlanting `json:"plantings"`
	Timeline  []aggregate.TimelineRow      `json:"timeline"`
}

type ObservationsView struct {
	Observations   []entities.Observation `json:"observations"`
	PestShare      *float64               `json:"pest_share"`
	PestsBySpecies []aggregate.GroupCount `json:"pests_by_species"`
	HeightByDate   []aggregate.DatePoint  `json:"height_by_date"`
}

type HarvestsView struct {
	Harvests       []aggregate.HarvestRow     `json:"harvests"`
	Summary        []aggregate.SpeciesHarvest `json:"summary"`
	MonthlyHarvest []aggregate.MonthPoint     `json:"monthly_harvest"`
	Total          int64                      `json:"total"`
}

type ManagementView struct {
	Events        []entities.ManagementEvent `json:"events"`
	EventsByType  []aggregate.GroupCount     `json:"events_by_type"`
	EventsByMonth aggregate.EventSeries      `json:"events_by_month"`
	EventHeatmap  []aggregate.BedDayCount    `json:"event_heatmap"`
}

type ExportView struct {
	Tables Tables `json:"tables"`
}

type ReportsView struct {
	Beds      []string             `json:"beds"`
	BedStatus []aggregate.BedState `json:"bed_status"`
}

// View returns the part of b that page name consumes. It returns nil for a
// name outside the closed set; use ParseView to validate input first.
func (b *Bundle) View(name ViewName) any {
	switch name {
	case ViewDashboard:
		return DashboardView{
			KPIs:               b.KPIs,
			BedStatus:          b.BedStatus,
			MonthlyHarvest:     b.MonthlyHarvest,
			HarvestByBed:       b.HarvestByBed,
			TopSpecies:         b.TopSpecies,
			SuccessBySpecies:   b.SuccessBySpecies,
			DaysToFirstHarvest: b.DaysToFirstHarvest,
			EventsByMonth:      b.EventsByMonth,
			Productivity:       b.Productivity,
		}
	case ViewPlantings:
		return PlantingsView{Plantings: b.Tables.Plantings, Timeline: b.Timeline}
	case ViewObservations:
		return ObservationsView{
			Observations:   b.Tables.Observations,
			PestShare:      b.KPIs.PestShare,
			PestsBySpecies: b.PestsBySpecies,
			HeightByDate:   b.HeightByDate,
		}
	case ViewHarvests:
		return HarvestsView{
			Harvests:       b.Tables.Harvests,
			Summary:        b.HarvestSummary,
			MonthlyHarvest: b.MonthlyHarvest,
			Total:          b.KPIs.TotalHarvested,
		}
	case ViewManagement:
		return ManagementView{Events: b.Tables.Events, EventsByType: b.EventsByType, EventsByMonth: b.EventsByMonth,
			EventHeatmap: b.EventHeatmap}
	case ViewExport:
		return ExportView{Tables: b.Tables}
	case ViewReports:
		names := make([]string, 0, len(b.BedStatus))
		for _, st := range b.BedStatus {
			names = append(names, st.Name)
		}
		return ReportsView{Beds: names, BedStatus: b.BedStatus}
	}
	return nil
}
