// Package store is the persistence and consistency layer: every read and
// mutation of owned data passes through here with the caller's user id, so
// ownership rules live in one place instead of being repeated per handler.
package store

import (
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Store wraps an explicitly passed gorm handle. One Store serves the whole
// process; each request runs against one implicit unit of work (gorm session)
// unless a method opens a transaction for multi-table cascades.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for migration and seeding.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Open dials the database behind dsn. Postgres DSNs (URL or key=value form)
// get the postgres driver; any other value is taken as a sqlite file path.
func Open(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}
