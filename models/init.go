package models

import (
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&Album{}); err != nil {
		return err
	}
	return db.AutoMigrate(&Photo{})
}
