package selection

import (
	"strings"

	"horta/entities"
	"horta/pkg/relations"
)

// Selection is the ordered set of planting ids matching a Criteria, plus the
// matching plantings themselves. An empty Selection means zero matches, never
// "no filter".
type Selection struct {
	PlantingIDs []int64                      `json:"planting_ids"`
	Plantings   []relations.EnrichedPlanting `json:"plantings"`
	ids         map[int64]struct{}
}

func (s Selection) Contains(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s Selection) Empty() bool { return len(s.PlantingIDs) == 0 }

// Select applies the criteria as a conjunction, in order: date range,
// species, bed, responsible, method, active only, search text. harvests and
// observations are the full tables; active-only and search consult them
// directly rather than a propagated subset.
func Select(view *relations.View, harvests []entities.Harvest, observations []entities.Observation, c Criteria) (Selection, error) {
	if err := c.Validate(); err != nil {
		return Selection{}, err
	}

	var harvested map[int64]struct{}
	if c.ActiveOnly {
		harvested = make(map[int64]struct{}, len(harvests))
		for _, h := range harvests {
			if h.PlantingID != nil {
				harvested[*h.PlantingID] = struct{}{}
			}
		}
	}

	term := strings.ToLower(strings.TrimSpace(c.SearchText))
	var commented map[int64]struct{}
	if term != "" {
		commented = map[int64]struct{}{}
		for _, o := range observations {
			if o.PlantingID != nil && strings.Contains(strings.ToLower(o.Comments), term) {
				commented[*o.PlantingID] = struct{}{}
			}
		}
	}

	sel := Selection{
		PlantingIDs: []int64{},
		Plantings:   []relations.EnrichedPlanting{},
		ids:         map[int64]struct{}{},
	}
	for _, p := range view.Plantings() {
		if c.DateRange != nil && (p.PlantingDate == nil || !c.DateRange.Contains(*p.PlantingDate)) {
			continue
		}
		if !IsAll(c.Species) && !nameIs(p.SpeciesName, c.Species) {
			continue
		}
		if !IsAll(c.Bed) && !nameIs(p.BedName, c.Bed) {
			continue
		}
		if !IsAll(c.Responsible) && relations.Bucket(p.Responsible) != c.Responsible {
			continue
		}
		if !IsAll(c.Method) && relations.Bucket(p.Method) != c.Method {
			continue
		}
		if c.ActiveOnly && p.PlantingID != nil {
			if _, ok := harvested[*p.PlantingID]; ok {
				continue
			}
		}
		if term != "" && !matchesSearch(p, term, commented) {
			continue
		}

		sel.Plantings = append(sel.Plantings, p)
		if p.PlantingID == nil {
			continue
		}
		if _, dup := sel.ids[*p.PlantingID]; !dup {
			sel.ids[*p.PlantingID] = struct{}{}
			sel.PlantingIDs = append(sel.PlantingIDs, *p.PlantingID)
		}
	}
	return sel, nil
}

func nameIs(name *string, want string) bool {
	return name != nil && *name == want
}

// matchesSearch is own notes OR any linked observation comment.
func matchesSearch(p relations.EnrichedPlanting, term string, commented map[int64]struct{}) bool {
	if strings.Contains(strings.ToLower(p.Notes), term) {
		return true
	}
	if p.PlantingID == nil {
		return false
	}
	_, ok := commented[*p.PlantingID]
	return ok
}
