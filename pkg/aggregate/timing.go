package aggregate

import (
	"fmt"
	"sort"
	"time"

	"horta/entities"
	"horta/pkg/relations"
)

type SpeciesDays struct {
	Species   string  `json:"species"`
	MeanDays  float64 `json:"mean_days"`
	Plantings int     `json:"plantings"` // plantings with a defined value
}

// DaysToFirstHarvest averages, per species, the days between planting and the
// earliest harvest. Plantings without a harvest or a date are left out.
func DaysToFirstHarvest(plantings []relations.EnrichedPlanting, harvests []entities.Harvest) []SpeciesDays {
	first := earliestHarvest(harvests)
	sum := map[string]float64{}
	n := map[string]int{}
	for _, p := range plantings {
		if p.PlantingID == nil || p.PlantingDate == nil {
			continue
		}
		h, ok := first[*p.PlantingID]
		if !ok {
			continue
		}
		k := groupKey(p.SpeciesName)
		sum[k] += float64(daysBetween(*p.PlantingDate, h))
		n[k]++
	}
	out := make([]SpeciesDays, 0, len(sum))
	for k, s := range sum {
		out = append(out, SpeciesDays{Species: k, MeanDays: s / float64(n[k]), Plantings: n[k]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanDays != out[j].MeanDays {
			return out[i].MeanDays < out[j].MeanDays
		}
		return out[i].Species < out[j].Species
	})
	return out
}

func earliestHarvest(harvests []entities.Harvest) map[int64]time.Time {
	first := map[int64]time.Time{}
	for _, h := range harvests {
		if h.PlantingID == nil || h.HarvestDate == nil {
			continue
		}
		if cur, ok := first[*h.PlantingID]; !ok || h.HarvestDate.Before(cur) {
			first[*h.PlantingID] = *h.HarvestDate
		}
	}
	return first
}

func latestHarvest(harvests []entities.Harvest) map[int64]time.Time {
	last := map[int64]time.Time{}
	for _, h := range harvests {
		if h.PlantingID == nil || h.HarvestDate == nil {
			continue
		}
		if cur, ok := last[*h.PlantingID]; !ok || h.HarvestDate.After(cur) {
			last[*h.PlantingID] = *h.HarvestDate
		}
	}
	return last
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

type TimelineRow struct {
	PlantingID  int64      `json:"planting_id"`
	Label       string     `json:"label"`
	BedName     string     `json:"bed_name"`
	SpeciesName string     `json:"species_name"`
	Start       *time.Time `json:"start"`
	End         time.Time  `json:"end"`
	Harvested   bool       `json:"harvested"`
}

// Timeline spans each planting from its planting date to its last harvest,
// or to asOf while it has none. Rows are ordered by start; undated last.
func Timeline(plantings []relations.EnrichedPlanting, harvests []entities.Harvest, asOf time.Time) []TimelineRow {
	last := latestHarvest(harvests)
	out := make([]TimelineRow, 0, len(plantings))
	for _, p := range plantings {
		if p.PlantingID == nil {
			continue
		}
		row := TimelineRow{
			PlantingID:  *p.PlantingID,
			BedName:     groupKey(p.BedName),
			SpeciesName: groupKey(p.SpeciesName),
			Start:       p.PlantingDate,
			End:         asOf,
		}
		row.Label = fmt.Sprintf("%d - %s", row.PlantingID, row.SpeciesName)
		if end, ok := last[*p.PlantingID]; ok {
			row.End, row.Harvested = end, true
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Start, out[j].Start
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.Before(*b)
	})
	return out
}
