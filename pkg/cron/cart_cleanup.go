package cron

import (
	"log"

	"github.com/robfig/cron/v3"

	"easyhousing_backend/pkg/database"
)

// InitCartCleanupCron schedules the nightly sweep of orphaned cart rows.
// Carts reference properties weakly; reads tolerate orphans by joining
// against properties, and this job reclaims the rows themselves.
func InitCartCleanupCron() {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		CleanupOrphanedCarts()
	})
	if err != nil {
		log.Printf("Could not initialize cart cleanup cron: %v", err)
		return
	}

	c.Start()
}

func CleanupOrphanedCarts() {
	result := database.GetDB().Exec(`
		DELETE FROM carts
		WHERE property_id NOT IN (
			SELECT id FROM properties WHERE deleted_at IS NULL
		)
	`)
	if result.Error != nil {
		log.Printf("Cart cleanup failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Cart cleanup removed %d orphaned rows", result.RowsAffected)
	}
}
