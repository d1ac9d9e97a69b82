package models

import "time"

// Category labels transactions. A null UserID marks a global category visible
// to everyone; otherwise the category is private to its owner. Name collisions
// across scopes are allowed.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
}
