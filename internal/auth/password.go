package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/chitfund/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrAdminLoginDisabled = errors.New("no admin password configured")
)

// AdminUser is the session user for a successful admin login.
var AdminUser = models.AuthUser{ID: "admin", Name: "Administrator", Role: models.RoleAdmin}

// PasswordSource provides the stored bcrypt hash of the admin password.
type PasswordSource interface {
	AdminPasswordHash() string
}

// PasswordAuthenticator implements admin login against a bcrypt hash.
type PasswordAuthenticator struct {
	source    PasswordSource
	bootstrap []byte
}

// NewPasswordAuthenticator creates an admin authenticator. The bootstrap
// password is accepted only while the group has no stored hash.
func NewPasswordAuthenticator(source PasswordSource, bootstrapPassword string) (*PasswordAuthenticator, error) {
	a := &PasswordAuthenticator{source: source}
	if bootstrapPassword != "" {
		hash, err := HashPassword(bootstrapPassword)
		if err != nil {
			return nil, err
		}
		a.bootstrap = []byte(hash)
	}
	return a, nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Authenticate verifies the admin password.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, _ string, credential string) (models.AuthUser, error) {
	hash := []byte(a.source.AdminPasswordHash())
	if len(hash) == 0 {
		hash = a.bootstrap
	}
	if len(hash) == 0 {
		return models.AuthUser{}, ErrAdminLoginDisabled
	}
	if !strings.HasPrefix(string(hash), "$2") {
		return models.AuthUser{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(credential)); err != nil {
		return models.AuthUser{}, ErrInvalidCredentials
	}
	return AdminUser, nil
}
