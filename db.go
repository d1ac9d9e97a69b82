package main

import (
	"log/slog"
	"os"
	"strings"

	"finapi/models"
	"finapi/store"

	"gorm.io/gorm"
)

// openDB connects through the DSN in DB_DSN. Postgres DSNs are recognized by
// shape; anything else is treated as a sqlite file path so local setups and
// tests run without a server.
func openDB() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		slog.Error("DB_DSN is not set; provide a Postgres DSN or a sqlite file path")
		os.Exit(1)
	}
	db, err := store.Open(dsn)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	return db
}

// migrateDB runs schema migration and seeding. Controlled by DB_AUTO_MIGRATE
// (default true); models are migrated individually so a failure on one does
// not block the others.
func migrateDB(db *gorm.DB) {
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
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
				slog.Warn("migration warning", "error", err)
			}
		}
	}
	seedDB(store.New(db))
}

// seedDB ensures the default global categories exist and the upload base
// directory is present.
func seedDB(s *store.Store) {
	for _, name := range defaultCategories {
		if err := s.EnsureGlobalCategory(name); err != nil {
			slog.Warn("failed to seed category", "name", name, "error", err)
		}
	}
	ensureUploadBase()
}

var defaultCategories = []string{
	"Food",
	"Transport",
	"Housing",
	"Health",
	"Leisure",
	"Education",
	"Salary",
	"Other",
}

// ensureUploadBase creates the base uploads directory.
func ensureUploadBase() {
	base := uploadBaseDir()
	if err := os.MkdirAll(base+"/proofs", 0755); err != nil {
		slog.Warn("failed to create upload base dir", "dir", base, "error", err)
	}
}

// uploadBaseDir returns the base directory for stored proof files
// (configurable via UPLOAD_BASE).
func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}
