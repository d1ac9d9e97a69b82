package models

import "time"

// Transaction types. Value always stores the magnitude; the sign of a
// movement is carried by Type.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction is one money movement against an account, optionally tagged
// with a category (cleared, not deleted, when the category goes away).
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	Description string    `gorm:"size:512;not null;index" json:"description"`
	Value       float64   `gorm:"not null" json:"value"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Paid        bool      `gorm:"default:false;not null" json:"paid"`
	ProofPath   string    `gorm:"size:512" json:"proof_path,omitempty"`
	AccountID   uint      `gorm:"index;not null" json:"account_id"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
