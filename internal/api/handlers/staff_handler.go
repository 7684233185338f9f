package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/api/jsonrpcx"
	"github.com/danghamo/zoo/internal/app/service"
	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/internal/domain/staff"
	"github.com/danghamo/zoo/internal/domain/zoo"
	"github.com/danghamo/zoo/pkg/logger"
)

// StaffHandler handles hiring
type StaffHandler struct {
	logger  *logger.Logger
	service *service.ZooService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(logger *logger.Logger, svc *service.ZooService) *StaffHandler {
	return &StaffHandler{
		logger:  logger.WithComponent("staff-handler"),
		service: svc,
	}
}

// HireVeterinarianRequest hires a veterinarian
type HireVeterinarianRequest struct {
	Name     string `json:"name" example:"Omar Zaid"`
	Licensed bool   `json:"licensed" example:"true"`
}

// HireZookeeperRequest hires a zookeeper
type HireZookeeperRequest struct {
	Name  string `json:"name" example:"Mostafa Raef"`
	Shift string `json:"shift" example:"Morning"`
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.ErrInvalidInputf("employee name is required")
	}
	return name, nil
}

// HireVeterinarian handles POST /api/v1/staff.HireVeterinarian
// @Summary Hire a veterinarian
// @Tags staff
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[HireVeterinarianRequest] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[zoo.RosterEntry]
// @Router /api/v1/staff.HireVeterinarian [post]
func (h *StaffHandler) HireVeterinarian(w http.ResponseWriter, r *http.Request) {
	var params HireVeterinarianRequest
	req, ok := decodeCall(r, &params)
	if !ok {
		return
	}

	name, err := requireName(params.Name)
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}

	v, err := h.service.HireVeterinarian(r.Context(), name, params.Licensed)
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}

	h.logger.Info("Veterinarian hired", zap.String("employeeId", v.ID().String()))
	jsonrpcx.Success(w, req.ID, rosterEntry(v))
}

// HireZookeeper handles POST /api/v1/staff.HireZookeeper
// @Summary Hire a zookeeper
// @Tags staff
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[HireZookeeperRequest] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[zoo.RosterEntry]
// @Router /api/v1/staff.HireZookeeper [post]
func (h *StaffHandler) HireZookeeper(w http.ResponseWriter, r *http.Request) {
	var params HireZookeeperRequest
	req, ok := decodeCall(r, &params)
	if !ok {
		return
	}

	name, err := requireName(params.Name)
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}

	k, err := h.service.HireZookeeper(r.Context(), name, params.Shift)
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}

	h.logger.Info("Zookeeper hired", zap.String("employeeId", k.ID().String()))
	jsonrpcx.Success(w, req.ID, rosterEntry(k))
}

func rosterEntry(m staff.Member) zoo.RosterEntry {
	return zoo.RosterEntry{ID: m.ID(), Name: m.Name(), Role: m.Role()}
}
