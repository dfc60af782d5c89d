package entities

import "time"

type Photo struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlantingID int64     `gorm:"index" json:"planting_id"`
	File       string    `json:"file"`
	Caption    string    `json:"caption"`
	CreatedAt  time.Time `json:"created_at"`
}
