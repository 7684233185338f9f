package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorBuilders_KeepSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{"invalid input", ErrInvalidInputf("bad %s", "capacity"), ErrInvalidInput, "bad capacity"},
		{"not found", ErrNotFoundf("employee %s", "EMP9"), ErrNotFound, "employee EMP9"},
		{"invalid operation", ErrInvalidOperationf("cannot move"), ErrInvalidOperation, "cannot move"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Contains(t, tt.err.Error(), tt.message)
		})
	}
}

func TestWrapDomainError(t *testing.T) {
	base := errors.New("enclosure is full")
	err := WrapDomainError(base, ErrCodeCapacityExceeded, "cannot admit")
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "cannot admit")

	err = WrapDomainErrorf(ErrInvalidInput, ErrCodeInvalidRole, "%s is not a veterinarian", "EMP1")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "EMP1 is not a veterinarian")
}

func TestNewDomainError(t *testing.T) {
	err := NewDomainError(ErrCodeInvalidCapacity, "capacity must be positive")
	assert.Contains(t, err.Error(), "capacity must be positive")

	err = NewDomainErrorf(ErrCodeInvalidCapacity, "capacity must be positive, got %d", -1)
	assert.Contains(t, err.Error(), "capacity must be positive, got -1")
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func TestCodeToString(t *testing.T) {
	assert.Equal(t, "CAPACITY_EXCEEDED", codeToString(ErrCodeCapacityExceeded))
	assert.Equal(t, "INVALID_ROLE", codeToString(ErrCodeInvalidRole))
	assert.Equal(t, "UNKNOWN_ERROR", codeToString(9999))
}
