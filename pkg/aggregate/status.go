package aggregate

import (
	"horta/entities"
	"horta/pkg/relations"
)

type Status string

const (
	StatusGood      Status = "good"
	StatusAttention Status = "attention"
	StatusCritical  Status = "critical"
)

const (
	goodThreshold      = 0.60
	attentionThreshold = 0.25
)

// Classify maps a harvest rate to a bed status; each band includes its lower bound.
func Classify(rate float64) Status {
	switch {
	case rate >= goodThreshold:
		return StatusGood
	case rate >= attentionThreshold:
		return StatusAttention
	default:
		return StatusCritical
	}
}

type BedState struct {
	BedID              *int64   `json:"bed_id"`
	Name               string   `json:"name"`
	Location           string   `json:"location"`
	AreaM2             *float64 `json:"area_m2"`
	TotalPlantings     int      `json:"total_plantings"`
	HarvestedPlantings int      `json:"harvested_plantings"`
	Rate               float64  `json:"rate"`
	Status             Status   `json:"status"`
	// HasData is false when the bed has no planting in the selection. Such a
	// bed still reports rate 0 and StatusCritical.
	HasData bool `json:"has_data"`
}

// BedStatus reports every bed of the beds table, in table order, against the
// selected plantings and their harvests.
func BedStatus(beds []entities.Bed, plantings []relations.EnrichedPlanting, harvests []entities.Harvest) []BedState {
	harvested := harvestedIDs(harvests)
	total := map[int64]map[int64]struct{}{}
	done := map[int64]map[int64]struct{}{}
	for _, p := range plantings {
		if p.BedID == nil || p.PlantingID == nil {
			continue
		}
		bed, id := *p.BedID, *p.PlantingID
		if total[bed] == nil {
			total[bed] = map[int64]struct{}{}
		}
		total[bed][id] = struct{}{}
		if _, ok := harvested[id]; ok {
			if done[bed] == nil {
				done[bed] = map[int64]struct{}{}
			}
			done[bed][id] = struct{}{}
		}
	}

	out := make([]BedState, 0, len(beds))
	for _, b := range beds {
		st := BedState{BedID: b.BedID, Name: b.Name, Location: b.Location, AreaM2: b.AreaM2}
		if b.BedID != nil {
			st.TotalPlantings = len(total[*b.BedID])
			st.HarvestedPlantings = len(done[*b.BedID])
		}
		if st.TotalPlantings > 0 {
			st.Rate = float64(st.HarvestedPlantings) / float64(st.TotalPlantings)
			st.HasData = true
		}
		st.Status = Classify(st.Rate)
		out = append(out, st)
	}
	return out
}
