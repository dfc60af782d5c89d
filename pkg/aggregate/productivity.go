package aggregate

import (
	"sort"

	"horta/entities"
)

type BedProductivity struct {
	Bed      string   `json:"bed"`
	Quantity float64  `json:"quantity"`
	AreaM2   *float64 `json:"area_m2"`
	PerArea  *float64 `json:"per_area"` // nil when the area is missing or 0
}

// ProductivityPerArea divides each bed's harvested quantity by its area.
// quantityByBed is keyed by bed name (HarvestByBed). Defined values sort
// descending, undefined ones follow by name.
func ProductivityPerArea(beds []entities.Bed, quantityByBed []GroupTotal) []BedProductivity {
	area := map[string]*float64{}
	for _, b := range beds {
		if _, dup := area[b.Name]; !dup {
			area[b.Name] = b.AreaM2
		}
	}
	out := make([]BedProductivity, 0, len(quantityByBed))
	for _, g := range quantityByBed {
		bp := BedProductivity{Bed: g.Group, Quantity: g.Total, AreaM2: area[g.Group]}
		if bp.AreaM2 != nil && *bp.AreaM2 > 0 {
			v := g.Total / *bp.AreaM2
			bp.PerArea = &v
		}
		out = append(out, bp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].PerArea, out[j].PerArea
		switch {
		case a != nil && b != nil:
			if *a != *b {
				return *a > *b
			}
			return out[i].Bed < out[j].Bed
		case a != nil:
			return true
		case b != nil:
			return false
		default:
			return out[i].Bed < out[j].Bed
		}
	})
	return out
}
