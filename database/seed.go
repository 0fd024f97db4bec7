package database

import (
	"log"

	"github.com/Gamescriptsy/Gradegame/models"
	"github.com/Gamescriptsy/Gradegame/workflow"

	"gorm.io/gorm"
)

// SeedCatalogGames inserts a row for each catalog game so the top-up pages
// have something to show. Existing rows are left alone; transactions keep
// referencing catalog ids even when a manager later deletes a game row.
func SeedCatalogGames(db *gorm.DB) error {
	for _, name := range workflow.CatalogNames() {
		id, _ := workflow.GameID(name)

		var count int64
		if err := db.Model(&models.Game{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		game := models.Game{ID: id, Name: name}
		if err := db.Create(&game).Error; err != nil {
			return err
		}
		log.Printf("[seed] catalog game %q (id=%d)", name, id)
	}
	return nil
}
