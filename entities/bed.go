package entities

// Bed is a physical planting area.
type Bed struct {
	RowID    uint     `gorm:"primaryKey" json:"-"`
	BedID    *int64   `gorm:"index" json:"bed_id"`
	Name     string   `json:"name"`
	Location string   `json:"location"`
	AreaM2   *float64 `json:"area_m2"` // nil when missing or not a valid area
}
