package selection

import "horta/entities"

// Propagate keeps the rows whose planting id is in the selection. Rows with
// a missing planting id are dropped, and an empty selection yields an empty
// (non-nil) result.
func Propagate[T any](sel Selection, rows []T, plantingID func(T) *int64) []T {
	out := make([]T, 0)
	if sel.Empty() {
		return out
	}
	for _, r := range rows {
		id := plantingID(r)
		if id != nil && sel.Contains(*id) {
			out = append(out, r)
		}
	}
	return out
}

func Harvests(sel Selection, rows []entities.Harvest) []entities.Harvest {
	return Propagate(sel, rows, func(h entities.Harvest) *int64 { return h.PlantingID })
}

func Observations(sel Selection, rows []entities.Observation) []entities.Observation {
	return Propagate(sel, rows, func(o entities.Observation) *int64 { return o.PlantingID })
}

func Events(sel Selection, rows []entities.ManagementEvent) []entities.ManagementEvent {
	return Propagate(sel, rows, func(e entities.ManagementEvent) *int64 { return e.PlantingID })
}
