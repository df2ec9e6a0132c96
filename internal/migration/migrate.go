package migration

import (
	"github.com/openflea/fleamarket-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for all tables. Creates missing tables and
// columns, never drops anything.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.Message{},
	)
}
