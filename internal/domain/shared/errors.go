package shared

import (
	"errors"

	"github.com/samber/oops"
)

// Sentinel errors wrapped by domain errors so callers can use errors.Is
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Domain error codes
const (
	ErrCodeInvalidInput     = 1001
	ErrCodeNotFound         = 1002
	ErrCodeInvalidOperation = 1004

	// Enclosure specific errors (4000-4999)
	ErrCodeInvalidCapacity      = 4001
	ErrCodeAnimalNotInEnclosure = 4002
	ErrCodeCapacityExceeded     = 4003

	// Staff specific errors (6000-6999)
	ErrCodeInvalidRole = 6001
	ErrCodeMissingZoo  = 6002
)

// NewDomainError creates a new domain error using oops
func NewDomainError(code int, message string) error {
	return oops.
		Code(codeToString(code)).
		In("domain").
		With("error_code", code).
		Errorf("%s", message)
}

// NewDomainErrorf creates a new domain error with formatted message
func NewDomainErrorf(code int, format string, args ...interface{}) error {
	return oops.
		Code(codeToString(code)).
		In("domain").
		With("error_code", code).
		Errorf(format, args...)
}

// WrapDomainError wraps an existing error with domain context.
// Sentinels passed here stay visible to errors.Is.
func WrapDomainError(err error, code int, message string) error {
	return oops.
		Code(codeToString(code)).
		In("domain").
		With("error_code", code).
		Wrapf(err, "%s", message)
}

// WrapDomainErrorf wraps an existing error with a formatted message
func WrapDomainErrorf(err error, code int, format string, args ...interface{}) error {
	return oops.
		Code(codeToString(code)).
		In("domain").
		With("error_code", code).
		Wrapf(err, format, args...)
}

// codeToString converts int error code to string
func codeToString(code int) string {
	switch code {
	case ErrCodeInvalidInput:
		return "INVALID_INPUT"
	case ErrCodeNotFound:
		return "NOT_FOUND"
	case ErrCodeInvalidOperation:
		return "INVALID_OPERATION"
	case ErrCodeInvalidCapacity:
		return "INVALID_CAPACITY"
	case ErrCodeAnimalNotInEnclosure:
		return "ANIMAL_NOT_IN_ENCLOSURE"
	case ErrCodeCapacityExceeded:
		return "CAPACITY_EXCEEDED"
	case ErrCodeInvalidRole:
		return "INVALID_ROLE"
	case ErrCodeMissingZoo:
		return "MISSING_ZOO"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Common domain error builders
func ErrInvalidInputf(format string, args ...interface{}) error {
	return WrapDomainErrorf(ErrInvalidInput, ErrCodeInvalidInput, format, args...)
}

func ErrNotFoundf(format string, args ...interface{}) error {
	return WrapDomainErrorf(ErrNotFound, ErrCodeNotFound, format, args...)
}

func ErrInvalidOperationf(format string, args ...interface{}) error {
	return WrapDomainErrorf(ErrInvalidOperation, ErrCodeInvalidOperation, format, args...)
}
