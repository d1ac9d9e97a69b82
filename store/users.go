package store

import (
	"fmt"
	"strings"
	"time"

	"finapi/models"

	"gorm.io/gorm"
)

// CreateUser inserts a new user. Email and document are unique; a duplicate
// on either reports ErrConflict.
func (s *Store) CreateUser(u *models.User) error {
	var existing models.User
	if err := s.db.Where("email = ? OR document = ?", u.Email, u.Document).First(&existing).Error; err == nil {
		return fmt.Errorf("user with that email or document already exists: %w", ErrConflict)
	}
	if err := s.db.Create(u).Error; err != nil {
		if isUniqueConstraintError(err) { // race after the pre-check
			return fmt.Errorf("user with that email or document already exists: %w", ErrConflict)
		}
		return err
	}
	return nil
}

func (s *Store) UserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
	}
	return &u, nil
}

func (s *Store) UserByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return &u, nil
}

// UpdatePassword swaps the stored credential hash for the given user.
func (s *Store) UpdatePassword(userID uint, hashed []byte) error {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("hashed_password", hashed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return nil
}

// SaveRefreshToken persists a hashed refresh token with its expiry.
func (s *Store) SaveRefreshToken(userID uint, tokenHash string, expiresAt time.Time) error {
	rt := models.RefreshToken{UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}
	return s.db.Create(&rt).Error
}

func (s *Store) RefreshTokenByHash(tokenHash string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := s.db.Where("token_hash = ?", tokenHash).First(&rt).Error; err != nil {
		return nil, fmt.Errorf("refresh token: %w", ErrNotFound)
	}
	return &rt, nil
}

func (s *Store) RevokeRefreshToken(id uint) error {
	return s.db.Model(&models.RefreshToken{}).Where("id = ?", id).Update("revoked", true).Error
}

// SaveResetToken persists a hashed password-reset token.
func (s *Store) SaveResetToken(userID uint, tokenHash string, expiresAt time.Time) error {
	prt := models.PasswordResetToken{UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}
	return s.db.Create(&prt).Error
}

// ConsumeResetToken resolves an unexpired, unused reset token and marks it
// used in the same unit of work. Returns the owning user id.
func (s *Store) ConsumeResetToken(tokenHash string, now time.Time) (uint, error) {
	var userID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var prt models.PasswordResetToken
		if err := tx.Where("token_hash = ?", tokenHash).First(&prt).Error; err != nil {
			return fmt.Errorf("reset token: %w", ErrNotFound)
		}
		if prt.Used || now.After(prt.ExpiresAt) {
			return fmt.Errorf("reset token expired or already used: %w", ErrNotFound)
		}
		if err := tx.Model(&prt).Update("used", true).Error; err != nil {
			return err
		}
		userID = prt.UserID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "UNIQUE constraint") || strings.Contains(s, "already exists")
}
