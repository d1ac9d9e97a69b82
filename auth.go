package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"finapi/models"
	"finapi/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
	resetTokenTTL   = time.Hour
)

// registerUser creates a user with a bcrypt-hashed credential.
func (api *API) registerUser(email, document, password, accountType, name string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(document) == "" {
		return nil, fmt.Errorf("email and document required: %w", store.ErrValidation)
	}
	if len(password) < 6 { // basic password policy
		return nil, fmt.Errorf("password too short (min 6): %w", store.ErrValidation)
	}
	if accountType == "" {
		accountType = "individual"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Email:          email,
		Document:       strings.TrimSpace(document),
		HashedPassword: hashed,
		AccountType:    accountType,
		Name:           name,
		Active:         true,
	}
	if err := api.store.CreateUser(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// authenticate verifies credentials without revealing which part failed.
func (api *API) authenticate(email, password string) (*models.User, error) {
	user, err := api.store.UserByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !user.Active {
		return nil, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

func (api *API) mintAccessToken(user *models.User, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.Email,
		"exp": time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(api.jwtSecret)
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash
// with expiry and returns the raw token string.
func (api *API) createAndStoreRefreshToken(userID uint) (string, error) {
	token, err := randomToken()
	if err != nil {
		return "", err
	}
	if err := api.store.SaveRefreshToken(userID, hashToken(token), time.Now().Add(refreshTokenTTL)); err != nil {
		return "", err
	}
	return token, nil
}

// findRefreshTokenByRaw resolves the stored record for a raw token string.
func (api *API) findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	return api.store.RefreshTokenByHash(hashToken(token))
}

// createResetToken issues a single-use password reset token for the user.
func (api *API) createResetToken(userID uint) (string, error) {
	token, err := randomToken()
	if err != nil {
		return "", err
	}
	if err := api.store.SaveResetToken(userID, hashToken(token), time.Now().Add(resetTokenTTL)); err != nil {
		return "", err
	}
	return token, nil
}

// consumeResetToken validates a raw reset token and marks it used.
func (api *API) consumeResetToken(token string) (uint, error) {
	return api.store.ConsumeResetToken(hashToken(token), time.Now())
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
