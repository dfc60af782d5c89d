package entities

import "time"

// EventTypeUnspecified is stored when a management event has no type.
const EventTypeUnspecified = "unspecified"

type ManagementEvent struct {
	RowID      uint       `gorm:"primaryKey" json:"-"`
	EventID    *int64     `json:"event_id"`
	PlantingID *int64     `gorm:"index" json:"planting_id"`
	EventDate  *time.Time `json:"event_date"`
	EventType  string     `json:"event_type"` // watering|fertilizing|treatment|...
}
