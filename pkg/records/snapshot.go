package records

import (
	"context"
	"time"

	"horta/entities"
)

const (
	TableBeds         = "beds"
	TableSpecies      = "species"
	TablePlantings    = "plantings"
	TableObservations = "observations"
	TableHarvests     = "harvests"
	TableEvents       = "events"
)

// Snapshot holds the six record tables of one load. It is never mutated
// after Load returns; a refresh produces a new Snapshot.
type Snapshot struct {
	Beds         []entities.Bed             `json:"beds"`
	Species      []entities.Species         `json:"species"`
	Plantings    []entities.Planting        `json:"plantings"`
	Observations []entities.Observation     `json:"observations"`
	Harvests     []entities.Harvest         `json:"harvests"`
	Events       []entities.ManagementEvent `json:"events"`
	LoadedAt     time.Time                  `json:"loaded_at"`
}

func (s *Snapshot) Counts() map[string]int {
	return map[string]int{
		TableBeds:         len(s.Beds),
		TableSpecies:      len(s.Species),
		TablePlantings:    len(s.Plantings),
		TableObservations: len(s.Observations),
		TableHarvests:     len(s.Harvests),
		TableEvents:       len(s.Events),
	}
}

// Source produces a fresh snapshot on every call.
type Source interface {
	Load(ctx context.Context) (*Snapshot, []Warning, error)
}
