package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidStaffKey is returned when a login presents the wrong staff key
var ErrInvalidStaffKey = errors.New("invalid staff key")

// StaffKey checks the shared key employees present at login against a bcrypt hash
type StaffKey struct {
	hash []byte
}

// NewStaffKey wraps a bcrypt hash
func NewStaffKey(hash string) *StaffKey {
	return &StaffKey{hash: []byte(hash)}
}

// HashStaffKey produces a bcrypt hash suitable for configuration
func HashStaffKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether key matches the configured hash
func (k *StaffKey) Verify(key string) error {
	if err := bcrypt.CompareHashAndPassword(k.hash, []byte(key)); err != nil {
		return ErrInvalidStaffKey
	}
	return nil
}
