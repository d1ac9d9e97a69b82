package models

import "time"

// Account is a named money container owned by exactly one user
// (checking, wallet, credit-card). Deleting it removes its transactions.
type Account struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time     `json:"-"`
	UpdatedAt      time.Time     `json:"-"`
	Name           string        `gorm:"size:255;not null;index" json:"name"`
	Type           string        `gorm:"size:64;not null" json:"type"`
	InitialBalance float64       `gorm:"not null;default:0" json:"initial_balance"`
	OwnerID        uint          `gorm:"index;not null" json:"owner_id"`
	Transactions   []Transaction `gorm:"foreignKey:AccountID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
