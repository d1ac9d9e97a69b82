package store

import (
	"fmt"

	"finapi/models"

	"gorm.io/gorm"
)

// CategoriesVisibleTo returns the union of global categories and the caller's
// private ones. Other users' private categories never appear.
func (s *Store) CategoriesVisibleTo(userID uint) ([]models.Category, error) {
	var cats []models.Category
	if err := s.db.Where("user_id IS NULL OR user_id = ?", userID).Order("name asc").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// categoryVisibleTo resolves a category the caller may reference: global or
// privately owned by the caller.
func (s *Store) categoryVisibleTo(userID, categoryID uint) (*models.Category, error) {
	var c models.Category
	if err := s.db.Where("id = ? AND (user_id IS NULL OR user_id = ?)", categoryID, userID).First(&c).Error; err != nil {
		return nil, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
	}
	return &c, nil
}

// CreateCategory adds a private category for the user. Name collisions with
// global categories or other users' categories are deliberately not checked.
func (s *Store) CreateCategory(userID uint, name string) (*models.Category, error) {
	uid := userID
	c := models.Category{Name: name, UserID: &uid}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// categoryOwnedBy resolves a category the caller may mutate: only an exact
// ownership match qualifies. Global rows and other users' rows both come back
// as ErrNotFound so their existence is not revealed.
func (s *Store) categoryOwnedBy(userID, categoryID uint) (*models.Category, error) {
	var c models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&c).Error; err != nil {
		return nil, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
	}
	return &c, nil
}

func (s *Store) RenameCategory(userID, categoryID uint, name string) (*models.Category, error) {
	c, err := s.categoryOwnedBy(userID, categoryID)
	if err != nil {
		return nil, err
	}
	c.Name = name
	if err := s.db.Save(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory removes a user-owned category. Transactions keep their rows
// with the category reference cleared; the owner's budgets for the category
// go with it. Only the owner ever sees a private category, so no other
// user's budgets can reference it.
func (s *Store) DeleteCategory(userID, categoryID uint) error {
	c, err := s.categoryOwnedBy(userID, categoryID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).Where("category_id = ?", c.ID).Update("category_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", c.ID).Delete(&models.CategoryBudget{}).Error; err != nil {
			return err
		}
		return tx.Delete(c).Error
	})
}

// EnsureGlobalCategory seeds a global category by name, idempotently.
func (s *Store) EnsureGlobalCategory(name string) error {
	var cnt int64
	if err := s.db.Model(&models.Category{}).Where("name = ? AND user_id IS NULL", name).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}
	return s.db.Create(&models.Category{Name: name}).Error
}
