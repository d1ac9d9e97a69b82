package store

import (
	"fmt"

	"finapi/models"

	"gorm.io/gorm"
)

// budgetKeyQuery scopes a query to the exact (user, category, month) key.
// A null month is its own key: it never falls back to a month-specific row
// and a month-specific lookup never matches the standing row.
func budgetKeyQuery(db *gorm.DB, userID, categoryID uint, month *string) *gorm.DB {
	q := db.Where("user_id = ? AND category_id = ?", userID, categoryID)
	if month == nil {
		return q.Where("month IS NULL")
	}
	return q.Where("month = ?", *month)
}

// UpsertBudget sets the spending limit for the key, overwriting an existing
// row in place rather than creating a duplicate. The category must be visible
// to the caller (global or own); month is an opaque string and not validated.
func (s *Store) UpsertBudget(userID, categoryID uint, limit float64, month *string) (*models.CategoryBudget, error) {
	if _, err := s.categoryVisibleTo(userID, categoryID); err != nil {
		return nil, err
	}
	var b models.CategoryBudget
	err := budgetKeyQuery(s.db.Model(&models.CategoryBudget{}), userID, categoryID, month).First(&b).Error
	if err == nil {
		b.Limit = limit
		b.Month = month
		if err := s.db.Save(&b).Error; err != nil {
			return nil, err
		}
		return &b, nil
	}
	b = models.CategoryBudget{UserID: userID, CategoryID: categoryID, Limit: limit, Month: month}
	if err := s.db.Create(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Budget fetches the row for the exact key, or ErrNotFound.
func (s *Store) Budget(userID, categoryID uint, month *string) (*models.CategoryBudget, error) {
	var b models.CategoryBudget
	err := budgetKeyQuery(s.db.Model(&models.CategoryBudget{}), userID, categoryID, month).First(&b).Error
	if err != nil {
		return nil, fmt.Errorf("budget for category %d: %w", categoryID, ErrNotFound)
	}
	return &b, nil
}

// BudgetsByUser lists every budget of the user across categories and months.
func (s *Store) BudgetsByUser(userID uint) ([]models.CategoryBudget, error) {
	var budgets []models.CategoryBudget
	if err := s.db.Where("user_id = ?", userID).Order("id asc").Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

// DeleteBudget removes the row for the exact key and reports whether one
// existed. Transactions are untouched.
func (s *Store) DeleteBudget(userID, categoryID uint, month *string) (bool, error) {
	res := budgetKeyQuery(s.db, userID, categoryID, month).Delete(&models.CategoryBudget{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
