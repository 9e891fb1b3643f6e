package gormdb

import (
	"fmt"

	"jsonview/infrastructure/persistence/gormdb/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the users and orders tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&po.UserPO{}, &po.OrderPO{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
