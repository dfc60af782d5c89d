package entities

import "time"

// Harvest quantity is always a whole number >= 0, see records.CoerceQuantity.
type Harvest struct {
	RowID       uint       `gorm:"primaryKey" json:"-"`
	HarvestID   *int64     `json:"harvest_id"`
	PlantingID  *int64     `gorm:"index" json:"planting_id"`
	HarvestDate *time.Time `json:"harvest_date"`
	Quantity    int64      `json:"quantity"`
}
