package store

import (
	"fmt"

	"finapi/models"

	"gorm.io/gorm"
)

// CreateAccount registers a money container for the owner.
func (s *Store) CreateAccount(ownerID uint, name, accType string, initialBalance float64) (*models.Account, error) {
	a := models.Account{Name: name, Type: accType, InitialBalance: initialBalance, OwnerID: ownerID}
	if err := s.db.Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) AccountsByOwner(ownerID uint) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Where("owner_id = ?", ownerID).Order("id asc").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Account resolves an account within the caller's ownership scope. A missing
// row and somebody else's row are indistinguishable: both are ErrNotFound.
func (s *Store) Account(callerID, accountID uint) (*models.Account, error) {
	var a models.Account
	if err := s.db.First(&a, accountID).Error; err != nil {
		return nil, fmt.Errorf("account %d: %w", accountID, ErrNotFound)
	}
	if a.OwnerID != callerID {
		return nil, fmt.Errorf("account %d: %w", accountID, ErrNotFound)
	}
	return &a, nil
}

// UpdateAccount replaces all mutable fields verbatim (full-replace semantics).
func (s *Store) UpdateAccount(callerID, accountID uint, name, accType string, initialBalance float64) (*models.Account, error) {
	a, err := s.Account(callerID, accountID)
	if err != nil {
		return nil, err
	}
	a.Name = name
	a.Type = accType
	a.InitialBalance = initialBalance
	if err := s.db.Save(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAccount removes the account and every transaction recorded against it
// in one unit of work.
func (s *Store) DeleteAccount(callerID, accountID uint) error {
	a, err := s.Account(callerID, accountID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", a.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(a).Error
	})
}
