package aggregate

import (
	"sort"

	"horta/entities"
	"horta/pkg/relations"
)

type GroupTotal struct {
	Group string  `json:"group"`
	Total float64 `json:"total"`
}

type GroupCount struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}

// GroupedSum sums value per key, sorted by descending total (ties by name).
// A nil or blank key groups under Unspecified.
func GroupedSum[T any](rows []T, key func(T) *string, value func(T) float64) []GroupTotal {
	sums := map[string]float64{}
	order := []string{}
	for _, r := range rows {
		k := groupKey(key(r))
		if _, ok := sums[k]; !ok {
			order = append(order, k)
		}
		sums[k] += value(r)
	}
	out := make([]GroupTotal, 0, len(order))
	for _, k := range order {
		out = append(out, GroupTotal{Group: k, Total: sums[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Group < out[j].Group
	})
	return out
}

func TopN(groups []GroupTotal, n int) []GroupTotal {
	if n < 0 || len(groups) <= n {
		return groups
	}
	return groups[:n]
}

func countBy[T any](rows []T, key func(T) *string) []GroupCount {
	counts := map[string]int{}
	for _, r := range rows {
		counts[groupKey(key(r))]++
	}
	out := make([]GroupCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, GroupCount{Group: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Group < out[j].Group
	})
	return out
}

// HarvestRow is a harvest joined to its planting's bed and species names.
type HarvestRow struct {
	entities.Harvest
	BedID       *int64  `json:"bed_id"`
	BedName     *string `json:"bed_name"`
	SpeciesName *string `json:"species_name"`
}

// JoinHarvests left-joins harvests to plantings; a harvest whose planting is
// not in plantings keeps nil names.
func JoinHarvests(plantings []relations.EnrichedPlanting, harvests []entities.Harvest) []HarvestRow {
	idx := plantingIndex(plantings)
	out := make([]HarvestRow, 0, len(harvests))
	for _, h := range harvests {
		row := HarvestRow{Harvest: h}
		if h.PlantingID != nil {
			if p, ok := idx[*h.PlantingID]; ok {
				row.BedID, row.BedName, row.SpeciesName = p.BedID, p.BedName, p.SpeciesName
			}
		}
		out = append(out, row)
	}
	return out
}

func HarvestByBed(rows []HarvestRow) []GroupTotal {
	return GroupedSum(rows, func(r HarvestRow) *string { return r.BedName }, quantity)
}

func HarvestBySpecies(rows []HarvestRow) []GroupTotal {
	return GroupedSum(rows, func(r HarvestRow) *string { return r.SpeciesName }, quantity)
}

func quantity(r HarvestRow) float64 { return float64(r.Quantity) }

type SpeciesRate struct {
	Species   string  `json:"species"`
	Rate      float64 `json:"rate"`
	Plantings int     `json:"plantings"`
	Harvested int     `json:"harvested"`
}

// SuccessRateBySpecies reports, per species group, the share of plantings
// with at least one harvest. Groups without plantings do not appear.
func SuccessRateBySpecies(plantings []relations.EnrichedPlanting, harvests []entities.Harvest) []SpeciesRate {
	harvested := harvestedIDs(harvests)
	tallies := map[string]*plantingTally{}
	for _, p := range plantings {
		k := groupKey(p.SpeciesName)
		t, ok := tallies[k]
		if !ok {
			t = &plantingTally{}
			tallies[k] = t
		}
		t.add(p.PlantingID, harvested)
	}
	out := make([]SpeciesRate, 0, len(tallies))
	for k, t := range tallies {
		out = append(out, SpeciesRate{Species: k, Plantings: t.total, Harvested: t.harvested,
			Rate: float64(t.harvested) / float64(t.total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rate != out[j].Rate {
			return out[i].Rate > out[j].Rate
		}
		return out[i].Species < out[j].Species
	})
	return out
}

type SpeciesHarvest struct {
	Species   string  `json:"species"`
	Total     int64   `json:"total"`
	Mean      float64 `json:"mean"`      // per harvested planting
	Plantings int     `json:"plantings"` // harvested plantings
}

// HarvestSummaryBySpecies sums quantity per harvested planting, then
// summarises those per-planting totals by species.
func HarvestSummaryBySpecies(plantings []relations.EnrichedPlanting, harvests []entities.Harvest) []SpeciesHarvest {
	idx := plantingIndex(plantings)
	perPlanting := map[int64]int64{}
	for _, h := range harvests {
		if h.PlantingID != nil {
			perPlanting[*h.PlantingID] += h.Quantity
		}
	}
	stats := map[string]*SpeciesHarvest{}
	for id, total := range perPlanting {
		var name *string
		if p, ok := idx[id]; ok {
			name = p.SpeciesName
		}
		k := groupKey(name)
		st, ok := stats[k]
		if !ok {
			st = &SpeciesHarvest{Species: k}
			stats[k] = st
		}
		st.Total += total
		st.Plantings++
	}
	out := make([]SpeciesHarvest, 0, len(stats))
	for _, st := range stats {
		st.Mean = float64(st.Total) / float64(st.Plantings)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Species < out[j].Species
	})
	return out
}

// PestsBySpecies counts observations with pests per species.
func PestsBySpecies(plantings []relations.EnrichedPlanting, observations []entities.Observation) []GroupCount {
	idx := plantingIndex(plantings)
	var names []*string
	for _, o := range observations {
		if !o.PestsObserved {
			continue
		}
		var name *string
		if o.PlantingID != nil {
			if p, ok := idx[*o.PlantingID]; ok {
				name = p.SpeciesName
			}
		}
		names = append(names, name)
	}
	return countBy(names, func(s *string) *string { return s })
}

func EventsByType(events []entities.ManagementEvent) []GroupCount {
	return countBy(events, func(e entities.ManagementEvent) *string { return &e.EventType })
}

func plantingIndex(plantings []relations.EnrichedPlanting) map[int64]relations.EnrichedPlanting {
	idx := make(map[int64]relations.EnrichedPlanting, len(plantings))
	for _, p := range plantings {
		if p.PlantingID == nil {
			continue
		}
		if _, dup := idx[*p.PlantingID]; !dup {
			idx[*p.PlantingID] = p
		}
	}
	return idx
}
