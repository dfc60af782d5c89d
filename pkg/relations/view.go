// Package relations derives the read-only joins every report needs from a
// records.Snapshot: plantings enriched with bed and species names, and id
// lookups. A View lives exactly as long as the snapshot it was built from.
package relations

import (
	"sort"
	"strings"
	"time"

	"horta/entities"
	"horta/pkg/records"
)

// NotAvailable is the bucket for a blank responsible or method.
const NotAvailable = "N/A"

// EnrichedPlanting is a planting plus the names it resolves to. A name is nil
// when the referenced bed or species does not exist.
type EnrichedPlanting struct {
	entities.Planting
	BedName     *string `json:"bed_name"`
	SpeciesName *string `json:"species_name"`
}

type View struct {
	snap      *records.Snapshot
	plantings []EnrichedPlanting
	beds      map[int64]entities.Bed
	species   map[int64]entities.Species
	byID      map[int64]int
}

// Build joins plantings to beds and species with left-outer semantics:
// every planting is kept. With duplicate ids the first row wins.
func Build(s *records.Snapshot) *View {
	v := &View{
		snap:    s,
		beds:    make(map[int64]entities.Bed, len(s.Beds)),
		species: make(map[int64]entities.Species, len(s.Species)),
		byID:    make(map[int64]int, len(s.Plantings)),
	}
	for _, b := range s.Beds {
		if b.BedID != nil {
			if _, dup := v.beds[*b.BedID]; !dup {
				v.beds[*b.BedID] = b
			}
		}
	}
	for _, sp := range s.Species {
		if sp.SpeciesID == nil {
			continue
		}
		if _, dup := v.species[*sp.SpeciesID]; !dup {
			v.species[*sp.SpeciesID] = sp
		}
	}

	v.plantings = make([]EnrichedPlanting, 0, len(s.Plantings))
	for _, p := range s.Plantings {
		ep := EnrichedPlanting{Planting: p}
		if p.BedID != nil {
			if b, ok := v.beds[*p.BedID]; ok {
				name := b.Name
				ep.BedName = &name
			}
		}
		if p.SpeciesID != nil {
			if sp, ok := v.species[*p.SpeciesID]; ok {
				name := sp.CommonName
				ep.SpeciesName = &name
			}
		}
		if p.PlantingID != nil {
			if _, dup := v.byID[*p.PlantingID]; !dup {
				v.byID[*p.PlantingID] = len(v.plantings)
			}
		}
		v.plantings = append(v.plantings, ep)
	}
	return v
}

func (v *View) Snapshot() *records.Snapshot { return v.snap }

// Plantings is shared by every caller and must not be modified.
func (v *View) Plantings() []EnrichedPlanting { return v.plantings }

func (v *View) Beds() []entities.Bed { return v.snap.Beds }

func (v *View) Planting(id int64) (EnrichedPlanting, bool) {
	i, ok := v.byID[id]
	if !ok {
		return EnrichedPlanting{}, false
	}
	return v.plantings[i], true
}

// Bucket maps a blank free-text value to NotAvailable.
func Bucket(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// Options are the values a filter form can offer for this snapshot.
type Options struct {
	Species      []string   `json:"species"`
	Beds         []string   `json:"beds"`
	Responsibles []string   `json:"responsibles"`
	Methods      []string   `json:"methods"`
	MinDate      *time.Time `json:"min_date"`
	MaxDate      *time.Time `json:"max_date"`
}

func (v *View) Options() Options {
	var o Options
	sp := map[string]struct{}{}
	for _, s := range v.snap.Species {
		if s.CommonName != "" {
			sp[s.CommonName] = struct{}{}
		}
	}
	beds := map[string]struct{}{}
	for _, b := range v.snap.Beds {
		if b.Name != "" {
			beds[b.Name] = struct{}{}
		}
	}
	resp := map[string]struct{}{}
	methods := map[string]struct{}{}
	for _, p := range v.plantings {
		resp[Bucket(p.Responsible)] = struct{}{}
		methods[Bucket(p.Method)] = struct{}{}
	}
	o.Species = sortedKeys(sp)
	o.Beds = sortedKeys(beds)
	o.Responsibles = sortedKeys(resp)
	o.Methods = sortedKeys(methods)
	o.MinDate, o.MaxDate = v.PlantingDateRange()
	return o
}

// PlantingDateRange is the observed [min, max] planting date, nil when no
// planting has a date.
func (v *View) PlantingDateRange() (first, last *time.Time) {
	for i := range v.plantings {
		d := v.plantings[i].PlantingDate
		if d == nil {
			continue
		}
		if first == nil || d.Before(*first) {
			first = d
		}
		if last == nil || d.After(*last) {
			last = d
		}
	}
	return first, last
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
