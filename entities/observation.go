package entities

import "time"

type Observation struct {
	RowID           uint       `gorm:"primaryKey" json:"-"`
	ObservationID   *int64     `json:"observation_id"`
	PlantingID      *int64     `gorm:"index" json:"planting_id"`
	ObservationDate *time.Time `json:"observation_date"`
	HeightCM        *float64   `json:"height_cm"`
	PestsObserved   bool       `json:"pests_observed"`
	Comments        string     `json:"comments"`
}
