package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// Ensure AdminAuthenticator implements Authenticator
var _ Authenticator = (*AdminAuthenticator)(nil)

// AdminAuthenticator checks a single admin account against a bcrypt hash.
type AdminAuthenticator struct {
	username     string
	passwordHash []byte
}

// NewAdminAuthenticator creates an authenticator for username whose
// password hashes to passwordHash.
func NewAdminAuthenticator(username, passwordHash string) *AdminAuthenticator {
	return &AdminAuthenticator{
		username:     username,
		passwordHash: []byte(passwordHash),
	}
}

// Authenticate verifies the username and password, returning the username
// as the token subject.
func (a *AdminAuthenticator) Authenticate(_ context.Context, username, credential string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	// bcrypt runs for unknown usernames too.
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(credential)); err != nil || !userOK {
		return "", ErrInvalidCredentials
	}

	return a.username, nil
}

// ValidatePassword checks if the password meets minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword validates and hashes password for use as ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
