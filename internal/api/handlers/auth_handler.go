package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/api/jsonrpcx"
	"github.com/danghamo/zoo/internal/app/service"
	"github.com/danghamo/zoo/internal/domain/auth"
	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/internal/domain/staff"
	"github.com/danghamo/zoo/pkg/logger"
)

// AuthHandler issues staff tokens
type AuthHandler struct {
	logger   *logger.Logger
	service  *service.ZooService
	tokens   *auth.TokenService
	staffKey *auth.StaffKey
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *logger.Logger, svc *service.ZooService, tokens *auth.TokenService, staffKey *auth.StaffKey) *AuthHandler {
	return &AuthHandler{
		logger:   logger.WithComponent("auth-handler"),
		service:  svc,
		tokens:   tokens,
		staffKey: staffKey,
	}
}

// LoginRequest identifies an employee and presents the shared staff key
type LoginRequest struct {
	EmployeeID string `json:"employee_id" example:"EMP1"`
	StaffKey   string `json:"staff_key"`
}

// RefreshRequest carries a token to renew
type RefreshRequest struct {
	Token string `json:"token"`
}

// TokenResponse is a bearer token for care requests
type TokenResponse struct {
	Token      string     `json:"token"`
	ExpiresAt  time.Time  `json:"expires_at"`
	EmployeeID string     `json:"employee_id"`
	Name       string     `json:"name"`
	Role       staff.Role `json:"role"`
}

// Login handles POST /api/v1/auth.Login
// @Summary Log in as an employee
// @Description Checks the staff key and issues a token bound to the employee
// @Tags auth
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[LoginRequest] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[TokenResponse]
// @Failure 401 {object} jsonrpcx.ErrorResponse "Invalid staff key or unknown employee"
// @Router /api/v1/auth.Login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var params LoginRequest
	req, ok := decodeCall(r, &params)
	if !ok {
		return
	}

	if err := h.staffKey.Verify(params.StaffKey); err != nil {
		h.logger.Warn("Login rejected", zap.String("employeeId", params.EmployeeID))
		jsonrpcx.WithError(r, req.ID, jsonrpcx.Unauthorized, "Invalid employee or staff key")
		return
	}

	member, err := h.service.Employee(r.Context(), shared.ID(params.EmployeeID))
	if err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.Unauthorized, "Invalid employee or staff key")
		return
	}

	token, expires, err := h.tokens.Issue(member)
	if err != nil {
		h.logger.Error("Failed to sign token", zap.Error(err))
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InternalError, "Failed to issue token")
		return
	}

	h.logger.Info("Employee logged in",
		zap.String("employeeId", member.ID().String()),
		zap.String("role", member.Role().String()))

	jsonrpcx.Success(w, req.ID, TokenResponse{
		Token:      token,
		ExpiresAt:  expires,
		EmployeeID: member.ID().String(),
		Name:       member.Name(),
		Role:       member.Role(),
	})
}

// Refresh handles POST /api/v1/auth.Refresh
// @Summary Renew a staff token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[RefreshRequest] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[TokenResponse]
// @Failure 401 {object} jsonrpcx.ErrorResponse "Invalid or expired token"
// @Router /api/v1/auth.Refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var params RefreshRequest
	req, ok := decodeCall(r, &params)
	if !ok {
		return
	}

	claims, err := h.tokens.Validate(params.Token)
	if err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.Unauthorized, "Invalid or expired token")
		return
	}

	token, expires, err := h.tokens.Refresh(params.Token)
	if err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.Unauthorized, "Invalid or expired token")
		return
	}

	jsonrpcx.Success(w, req.ID, TokenResponse{
		Token:      token,
		ExpiresAt:  expires,
		EmployeeID: claims.EmployeeID,
		Name:       claims.Name,
		Role:       claims.Role,
	})
}
