package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/api/jsonrpcx"
	"github.com/danghamo/zoo/internal/api/middleware"
	"github.com/danghamo/zoo/internal/app/service"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/pkg/logger"
)

// CareHandler handles animal care performed by the authenticated employee
type CareHandler struct {
	logger  *logger.Logger
	service *service.ZooService
}

// NewCareHandler creates a new care handler
func NewCareHandler(logger *logger.Logger, svc *service.ZooService) *CareHandler {
	return &CareHandler{
		logger:  logger.WithComponent("care-handler"),
		service: svc,
	}
}

// MoveRequest moves an animal into another enclosure
type MoveRequest struct {
	EnclosureID string `json:"enclosure_id" example:"E1"`
	Name        string `json:"name" example:"lion1"`
	To          string `json:"to" example:"E0"`
}

// MoveResponse reports where the animal went
type MoveResponse struct {
	Animal string `json:"animal"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// locate resolves the authenticated employee and the referenced animal
func (h *CareHandler) locate(r *http.Request, req *jsonrpcx.Request, ref AnimalRef) (shared.ID, animal.Animal, bool) {
	employeeID, ok := middleware.GetEmployeeID(r.Context())
	if !ok {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.Unauthorized, "Staff authentication required")
		return "", nil, false
	}

	a, err := h.service.FindAnimal(r.Context(), shared.ID(ref.EnclosureID), ref.Name)
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return "", nil, false
	}
	return employeeID, a, true
}

// Treat handles POST /api/v1/care.Treat
// @Summary Treat an animal
// @Description The authenticated employee must be a veterinarian. Health rises by 10 up to 100.
// @Tags care
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[AnimalRef] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[staff.Treatment]
// @Failure 401 {object} jsonrpcx.ErrorResponse "Authentication required"
// @Security BearerAuth
// @Router /api/v1/care.Treat [post]
func (h *CareHandler) Treat(w http.ResponseWriter, r *http.Request) {
	var params AnimalRef
	req, ok := decodeCall(r, &params)
	if !ok {
		return
	}
	employeeID, a, ok := h.locate(r, req, params)
	if !ok {
		return
	}

	treatment, err := h.service.Treat(r.Context(), employeeID, a)
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}

	h.logger.Info("Animal treated",
		zap.String("employeeId", employeeID.String()),
		zap.String("animal", a.Name()),
		zap.String("outcome", treatment.Outcome.String()))

	jsonrpcx.Success(w, req.ID, treatment)
}

// Feed handles POST /api/v1/care.Feed
// @Summary Feed an animal
// @Description The authenticated employee must be a zookeeper. Feeding does not change the animal.
// @Tags care
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[AnimalRef] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[animal.Meal]
// @Failure 401 {object} jsonrpcx.ErrorResponse "Authentication required"
// @Security BearerAuth
// @Router /api/v1/care.Feed [post]
func (h *CareHandler) Feed(w http.ResponseWriter, r *http.Request) {
	var params AnimalRef
	req, ok := decodeCall(r, &params)
	if !ok {
		return
	}
	employeeID, a, ok := h.locate(r, req, params)
	if !ok {
		return
	}

	meal, err := h.service.Feed(r.Context(), employeeID, a)
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}
	jsonrpcx.Success(w, req.ID, meal)
}

// Move handles POST /api/v1/care.Move
// @Summary Move an animal to another enclosure
// @Description The authenticated employee must be a zookeeper. A full target under the enforced policy rejects the move and the animal stays put.
// @Tags care
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[MoveRequest] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[MoveResponse]
// @Failure 401 {object} jsonrpcx.ErrorResponse "Authentication required"
// @Security BearerAuth
// @Router /api/v1/care.Move [post]
func (h *CareHandler) Move(w http.ResponseWriter, r *http.Request) {
	var params MoveRequest
	req, ok := decodeCall(r, &params)
	if !ok {
		return
	}
	employeeID, a, ok := h.locate(r, req, AnimalRef{EnclosureID: params.EnclosureID, Name: params.Name})
	if !ok {
		return
	}

	if err := h.service.Move(r.Context(), employeeID, a, shared.ID(params.To)); err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}

	h.logger.Info("Animal moved",
		zap.String("employeeId", employeeID.String()),
		zap.String("animal", a.Name()),
		zap.String("from", params.EnclosureID),
		zap.String("to", params.To))

	jsonrpcx.Success(w, req.ID, MoveResponse{
		Animal: a.Name(),
		From:   params.EnclosureID,
		To:     animal.EnclosureID(a).String(),
	})
}
