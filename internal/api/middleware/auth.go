package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/api/jsonrpcx"
	"github.com/danghamo/zoo/internal/domain/auth"
	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/internal/domain/staff"
	"github.com/danghamo/zoo/pkg/logger"
)

type staffContextKey struct{}

// TokenValidator validates bearer tokens
type TokenValidator interface {
	Validate(tokenString string) (*auth.StaffClaims, error)
}

// AuthMiddleware authenticates staff from a bearer token
type AuthMiddleware struct {
	tokens TokenValidator
	logger *logger.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens TokenValidator, logger *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		logger: logger.WithComponent("auth-middleware"),
	}
}

// RequireStaff rejects requests without a valid staff token
func (m *AuthMiddleware) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			m.logger.Debug("Missing or malformed Authorization header")
			jsonrpcx.WithError(r, nil, jsonrpcx.Unauthorized, "Missing or malformed Authorization header")
			return
		}

		claims, err := m.tokens.Validate(tokenString)
		if err != nil {
			m.logger.Debug("Invalid staff token", zap.Error(err))
			jsonrpcx.WithError(r, nil, jsonrpcx.Unauthorized, "Invalid or expired token")
			return
		}

		m.logger.Debug("Staff authenticated",
			zap.String("employeeId", claims.EmployeeID),
			zap.String("role", claims.Role.String()))

		next.ServeHTTP(w, r.WithContext(WithStaff(r.Context(), claims)))
	})
}

// RequireStaffFunc adapts RequireStaff for handler functions
func (m *AuthMiddleware) RequireStaffFunc(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireStaff(next).ServeHTTP
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// WithStaff stores authenticated staff claims in ctx
func WithStaff(ctx context.Context, claims *auth.StaffClaims) context.Context {
	return context.WithValue(ctx, staffContextKey{}, claims)
}

// GetStaff returns the authenticated staff claims
func GetStaff(ctx context.Context) (*auth.StaffClaims, bool) {
	claims, ok := ctx.Value(staffContextKey{}).(*auth.StaffClaims)
	return claims, ok
}

// GetEmployeeID returns the authenticated employee id
func GetEmployeeID(ctx context.Context) (shared.ID, bool) {
	claims, ok := GetStaff(ctx)
	if !ok {
		return "", false
	}
	return claims.Employee(), true
}

// GetRole returns the authenticated employee's role
func GetRole(ctx context.Context) (staff.Role, bool) {
	claims, ok := GetStaff(ctx)
	if !ok {
		return "", false
	}
	return claims.Role, true
}
