package database

import (
	"gorm.io/gorm"

	"github.com/Zecser/Catering-and-Tourism/internal/domain"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.OTP{},
		&domain.Blog{},
		&domain.GalleryImage{},
	)
}
