// Package database holds the sqlite-backed archive of generated
// recipes. The JSON document stores in internal/store never go through
// here; the archive only backs the recipe history view.
package database

import (
	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"smartchef/internal/models"
)

// Open opens the archive database and runs migrations.
func Open(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.ArchivedRecipe{}).Error; err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
