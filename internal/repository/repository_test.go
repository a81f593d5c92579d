package repository

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Zecser/Catering-and-Tourism/internal/domain"
)

// openTestDB gives each test its own in-memory database with the same
// error translation the production connection uses.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.OTP{},
		&domain.Blog{},
		&domain.GalleryImage{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, repo UserRepository, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     "tester",
		Email:        email,
		PasswordHash: "$2a$10$placeholderplaceholderplaceh",
		MobileNumber: "9876543210",
		Role:         domain.RoleUser,
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
