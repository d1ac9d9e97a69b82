package store

import (
	"path/filepath"
	"testing"

	"finapi/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, m := range []any{
		&models.User{},
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
		&models.CategoryBudget{},
		&models.RefreshToken{},
		&models.PasswordResetToken{},
		&models.Proof{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}
	return New(db)
}

func mustCreateUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	u := &models.User{
		Email:          email,
		Document:       "doc-" + email,
		HashedPassword: []byte("hashed"),
		AccountType:    "individual",
		Active:         true,
	}
	if err := s.CreateUser(u); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func mustCreateAccount(t *testing.T, s *Store, ownerID uint, name string) *models.Account {
	t.Helper()
	a, err := s.CreateAccount(ownerID, name, "checking", 0)
	if err != nil {
		t.Fatalf("create account %s: %v", name, err)
	}
	return a
}

func mustCreateGlobalCategory(t *testing.T, s *Store, name string) *models.Category {
	t.Helper()
	if err := s.EnsureGlobalCategory(name); err != nil {
		t.Fatalf("seed category %s: %v", name, err)
	}
	var c models.Category
	if err := s.db.Where("name = ? AND user_id IS NULL", name).First(&c).Error; err != nil {
		t.Fatalf("fetch seeded category %s: %v", name, err)
	}
	return &c
}
