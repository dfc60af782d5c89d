// Package aggregate computes the report metrics over a selection and its
// propagated child tables. Every function is pure and accepts empty input.
//
// Ratios with a zero denominator are undefined: functions return
// (0, false) and bundles carry a nil pointer. They are never reported as 0.
package aggregate

import (
	"horta/entities"
	"horta/pkg/relations"
)

// Unspecified is the group for a missing or blank group key.
const Unspecified = "unspecified"

func TotalHarvested(harvests []entities.Harvest) int64 {
	var total int64
	for _, h := range harvests {
		total += h.Quantity
	}
	return total
}

// PlantingCount counts plantings by identity: rows sharing a planting id
// count once, and each row without an id counts on its own.
func PlantingCount(plantings []relations.EnrichedPlanting) int {
	var c plantingTally
	for _, p := range plantings {
		c.add(p.PlantingID, nil)
	}
	return c.total
}

// HarvestedPlantingCount counts distinct planting ids with at least one harvest.
func HarvestedPlantingCount(harvests []entities.Harvest) int {
	return len(harvestedIDs(harvests))
}

// SuccessRate is the share of plantings with at least one harvest, counted
// the way PlantingCount and BedStatus count them.
func SuccessRate(plantings []relations.EnrichedPlanting, harvests []entities.Harvest) (float64, bool) {
	harvested := harvestedIDs(harvests)
	var c plantingTally
	for _, p := range plantings {
		c.add(p.PlantingID, harvested)
	}
	if c.total == 0 {
		return 0, false
	}
	return float64(c.harvested) / float64(c.total), true
}

// plantingTally counts plantings once per id. A row without an id is its own
// planting and never harvested.
type plantingTally struct {
	seen      map[int64]struct{}
	total     int
	harvested int
}

func (t *plantingTally) add(id *int64, harvested map[int64]struct{}) {
	if id == nil {
		t.total++
		return
	}
	if t.seen == nil {
		t.seen = map[int64]struct{}{}
	}
	if _, dup := t.seen[*id]; dup {
		return
	}
	t.seen[*id] = struct{}{}
	t.total++
	if _, ok := harvested[*id]; ok {
		t.harvested++
	}
}

// AverageQuantityPerHarvestedPlanting is the mean, over plantings with a
// harvest, of each planting's total quantity.
func AverageQuantityPerHarvestedPlanting(harvests []entities.Harvest) (float64, bool) {
	sums := map[int64]int64{}
	for _, h := range harvests {
		if h.PlantingID != nil {
			sums[*h.PlantingID] += h.Quantity
		}
	}
	if len(sums) == 0 {
		return 0, false
	}
	var total int64
	for _, v := range sums {
		total += v
	}
	return float64(total) / float64(len(sums)), true
}

// PestShare is the fraction of observations that recorded pests.
func PestShare(observations []entities.Observation) (float64, bool) {
	if len(observations) == 0 {
		return 0, false
	}
	n := 0
	for _, o := range observations {
		if o.PestsObserved {
			n++
		}
	}
	return float64(n) / float64(len(observations)), true
}

// Ptr turns a (value, defined) pair into a nullable value for bundles.
func Ptr(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

func harvestedIDs(harvests []entities.Harvest) map[int64]struct{} {
	ids := make(map[int64]struct{}, len(harvests))
	for _, h := range harvests {
		if h.PlantingID != nil {
			ids[*h.PlantingID] = struct{}{}
		}
	}
	return ids
}

func groupKey(s *string) string {
	if s == nil || *s == "" {
		return Unspecified
	}
	return *s
}
