package store

import (
	"fmt"
	"math"
	"strings"
	"time"

	"finapi/models"
)

// TransactionInput carries the fields for recording a movement. Value may
// arrive signed; it is stored as its absolute magnitude and the direction is
// carried by Type alone.
type TransactionInput struct {
	Description string
	Value       float64
	Type        string
	Date        time.Time
	Paid        bool
	CategoryID  *uint
	ProofPath   string
}

// TransactionUpdate applies partial-update semantics: only non-nil fields are
// written. A supplied Value is re-normalized to its magnitude regardless of
// sign.
type TransactionUpdate struct {
	Description *string
	Value       *float64
	Type        *string
	Date        *time.Time
	Paid        *bool
	CategoryID  *uint
	ProofPath   *string
}

// TransactionFilters narrows a listing. Category and Search are
// case-insensitive substring matches (AND-combined); DateFrom/DateTo are
// inclusive ISO-8601 date bounds where a malformed bound is treated as
// absent. Pagination is offset/limit.
type TransactionFilters struct {
	Category string
	Search   string
	DateFrom string
	DateTo   string
	Page     int
	PageSize int
}

// RecordTransaction appends a movement to an account the caller owns.
func (s *Store) RecordTransaction(callerID, accountID uint, in TransactionInput) (*models.Transaction, error) {
	a, err := s.Account(callerID, accountID)
	if err != nil {
		return nil, err
	}
	t := models.Transaction{
		Description: in.Description,
		Value:       math.Abs(in.Value),
		Type:        in.Type,
		Date:        in.Date,
		Paid:        in.Paid,
		ProofPath:   in.ProofPath,
		AccountID:   a.ID,
		CategoryID:  in.CategoryID,
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTransactions returns one page of the account's ledger, newest date
// first, plus the total size of the filtered set before pagination.
func (s *Store) ListTransactions(callerID, accountID uint, f TransactionFilters) ([]models.Transaction, int64, error) {
	if _, err := s.Account(callerID, accountID); err != nil {
		return nil, 0, err
	}
	q := s.db.Model(&models.Transaction{}).Where("transactions.account_id = ?", accountID)
	if f.Category != "" {
		q = q.Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
			Where("LOWER(categories.name) LIKE ?", "%"+strings.ToLower(f.Category)+"%")
	}
	if f.Search != "" {
		q = q.Where("LOWER(transactions.description) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if from, ok := parseDateBound(f.DateFrom); ok {
		q = q.Where("transactions.date >= ?", from)
	}
	if to, ok := parseDateBound(f.DateTo); ok {
		// inclusive upper bound on the calendar date
		q = q.Where("transactions.date < ?", to.AddDate(0, 0, 1))
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 {
		size = 10
	}
	var items []models.Transaction
	err := q.Order("transactions.date DESC").
		Offset((page - 1) * size).Limit(size).
		Preload("Category").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// parseDateBound accepts an ISO-8601 calendar date. Anything else is treated
// as an absent bound rather than rejected.
func parseDateBound(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// transactionForWrite resolves a transaction and re-verifies transitive
// ownership (transaction -> account -> owner) on every call. A missing
// transaction or account is ErrNotFound; an account owned by someone else is
// ErrForbidden.
func (s *Store) transactionForWrite(callerID, txID uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.db.First(&t, txID).Error; err != nil {
		return nil, fmt.Errorf("transaction %d: %w", txID, ErrNotFound)
	}
	var a models.Account
	if err := s.db.First(&a, t.AccountID).Error; err != nil {
		return nil, fmt.Errorf("account %d: %w", t.AccountID, ErrNotFound)
	}
	if a.OwnerID != callerID {
		return nil, fmt.Errorf("transaction %d: %w", txID, ErrForbidden)
	}
	return &t, nil
}

// Transaction resolves a transaction within the caller's write scope, with
// the same error semantics as the mutating operations.
func (s *Store) Transaction(callerID, txID uint) (*models.Transaction, error) {
	return s.transactionForWrite(callerID, txID)
}

func (s *Store) UpdateTransaction(callerID, txID uint, upd TransactionUpdate) (*models.Transaction, error) {
	t, err := s.transactionForWrite(callerID, txID)
	if err != nil {
		return nil, err
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Value != nil {
		t.Value = math.Abs(*upd.Value)
	}
	if upd.Type != nil {
		t.Type = *upd.Type
	}
	if upd.Date != nil {
		t.Date = *upd.Date
	}
	if upd.Paid != nil {
		t.Paid = *upd.Paid
	}
	if upd.ProofPath != nil {
		t.ProofPath = *upd.ProofPath
	}
	if upd.CategoryID != nil {
		t.CategoryID = upd.CategoryID
	}
	if err := s.db.Save(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// SetTransactionPaid flips only the paid flag, with the same ownership check
// as a full update.
func (s *Store) SetTransactionPaid(callerID, txID uint, paid bool) (*models.Transaction, error) {
	t, err := s.transactionForWrite(callerID, txID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(t).Update("paid", paid).Error; err != nil {
		return nil, err
	}
	t.Paid = paid
	return t, nil
}

func (s *Store) DeleteTransaction(callerID, txID uint) error {
	t, err := s.transactionForWrite(callerID, txID)
	if err != nil {
		return err
	}
	return s.db.Delete(t).Error
}

// AttachProofPath records the opaque proof reference on an owned transaction.
func (s *Store) AttachProofPath(callerID, txID uint, path string) (*models.Transaction, error) {
	t, err := s.transactionForWrite(callerID, txID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(t).Update("proof_path", path).Error; err != nil {
		return nil, err
	}
	t.ProofPath = path
	return t, nil
}
