package models

import "time"

// Proof is an uploaded payment document. The ledger only carries the opaque
// StorePath; SuggestedValue is a best-effort OCR hint and never feeds back
// into the recorded transaction value. Failed uploads keep their record so
// the retry sweep can revisit them.
type Proof struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
	OwnerID        uint      `gorm:"index;not null" json:"owner_id"`
	TransactionID  *uint     `gorm:"index" json:"transaction_id,omitempty"`
	FileName       string    `gorm:"size:255;not null" json:"file_name"`
	StorePath      string    `gorm:"column:store_path;size:512;not null" json:"store_path"`
	ContentType    string    `gorm:"size:128" json:"content_type,omitempty"`
	SuggestedValue *float64  `json:"suggested_value,omitempty"`
	Failed         bool      `gorm:"default:false;index" json:"failed"`
	FailedReason   string    `gorm:"size:255" json:"failed_reason,omitempty"`
}
