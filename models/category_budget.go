package models

import "time"

// CategoryBudget is a spending limit keyed by (user, category, month).
// A null Month is a standing budget distinct from month-specific rows
// ("YYYY-MM"); at most one row exists per key.
type CategoryBudget struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
	UserID     uint      `gorm:"index;not null;uniqueIndex:idx_budget_key" json:"user_id"`
	CategoryID uint      `gorm:"not null;uniqueIndex:idx_budget_key" json:"category_id"`
	Limit      float64   `gorm:"column:limit;not null" json:"limit"`
	Month      *string   `gorm:"size:7;uniqueIndex:idx_budget_key" json:"month,omitempty"`
}
