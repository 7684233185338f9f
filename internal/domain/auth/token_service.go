package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/internal/domain/staff"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or claim checks
var ErrInvalidToken = errors.New("invalid or expired token")

// StaffClaims identifies the employee a token was issued to
type StaffClaims struct {
	EmployeeID string     `json:"employee_id"`
	Name       string     `json:"name"`
	Role       staff.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 staff tokens
type TokenService struct {
	secretKey      []byte
	issuer         string
	expiryDuration time.Duration
	now            func() time.Time
}

// NewTokenService creates a token service
func NewTokenService(secretKey string, issuer string, expiryDuration time.Duration) *TokenService {
	return &TokenService{
		secretKey:      []byte(secretKey),
		issuer:         issuer,
		expiryDuration: expiryDuration,
		now:            time.Now,
	}
}

// Issue creates a token for m
func (s *TokenService) Issue(m staff.Member) (string, time.Time, error) {
	return s.sign(m.ID().String(), m.Name(), m.Role())
}

// Validate checks a token and returns its claims
func (s *TokenService) Validate(tokenString string) (*StaffClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*StaffClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.EmployeeID == "" {
		return nil, fmt.Errorf("%w: missing employee id", ErrInvalidToken)
	}

	return claims, nil
}

// Refresh re-issues a valid token with a fresh expiry
func (s *TokenService) Refresh(tokenString string) (string, time.Time, error) {
	claims, err := s.Validate(tokenString)
	if err != nil {
		return "", time.Time{}, err
	}
	return s.sign(claims.EmployeeID, claims.Name, claims.Role)
}

func (s *TokenService) sign(employeeID, name string, role staff.Role) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.expiryDuration)
	claims := StaffClaims{
		EmployeeID: employeeID,
		Name:       name,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   employeeID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Employee returns the claimed employee id
func (c *StaffClaims) Employee() shared.ID {
	return shared.ID(c.EmployeeID)
}
