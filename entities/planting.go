package entities

import "time"

// Planting is one species placed in one bed on a date. BedID and SpeciesID
// may fail to resolve; consumers treat that as an unknown group.
type Planting struct {
	RowID        uint       `gorm:"primaryKey" json:"-"`
	PlantingID   *int64     `gorm:"index" json:"planting_id"`
	BedID        *int64     `gorm:"index" json:"bed_id"`
	SpeciesID    *int64     `gorm:"index" json:"species_id"`
	PlantingDate *time.Time `json:"planting_date"`
	Responsible  string     `json:"responsible"`
	Method       string     `json:"method"`
	Notes        string     `json:"notes"`
}
