package models

import (
	"time"
)

// User model. Document holds the user's tax id and is unique alongside the
// email. AccountType distinguishes individual from business users.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time  `json:"-"`
	UpdatedAt      time.Time  `json:"-"`
	DeletedAt      *time.Time `gorm:"index" json:"-"`
	Email          string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Document       string     `gorm:"size:64;not null;uniqueIndex" json:"document"`
	HashedPassword []byte     `gorm:"not null" json:"-"`
	AccountType    string     `gorm:"size:32;not null;default:individual" json:"account_type"`
	Name           string     `gorm:"size:255" json:"name"`
	PhotoURL       string     `gorm:"size:512" json:"photo_url,omitempty"`
	Active         bool       `gorm:"default:true;not null" json:"is_active"`
	Accounts       []Account  `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
