package database

import (
	"github.com/eventdesk/eventdesk-api/internal/config"
	"github.com/eventdesk/eventdesk-api/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	// Foreign keys must be switched on per connection for cascade deletes
	// (event -> materials/inscriptions, user -> inscriptions/ratings) to fire.
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath+"?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to auto migrate")
	}

	return db
}

// Migrate creates or updates the schema for every stored record type.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventMaterial{},
		&models.Inscription{},
		&models.Rating{},
	)
}
