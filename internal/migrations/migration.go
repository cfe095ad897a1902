package migrations

import (
	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"snackbar/internal/models"
)

// RunMigrations creates or updates the orders and order_items tables.
// Existing rows are left in place.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
