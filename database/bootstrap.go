// database/bootstrap.go
package database

import (
	"fmt"
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"horta/entities"
)

// Models lists every table the application keeps in SQLite.
func Models() []any {
	return []any{
		&entities.Bed{},
		&entities.Species{},
		&entities.Planting{},
		&entities.Observation{},
		&entities.Harvest{},
		&entities.ManagementEvent{},
		&entities.Photo{},
	}
}

// Open opens the database at path and migrates all models.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

func OpenSQLite(path string) *gorm.DB {
	db, err := Open(path)
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	return db
}
