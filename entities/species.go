package entities

type Species struct {
	RowID      uint   `gorm:"primaryKey" json:"-"`
	SpeciesID  *int64 `gorm:"index" json:"species_id"`
	CommonName string `json:"common_name"`
}
