package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/api/jsonrpcx"
	"github.com/danghamo/zoo/internal/app/query"
	"github.com/danghamo/zoo/internal/app/service"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/enclosure"
	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/pkg/logger"
)

// EnclosureHandler handles enclosure requests with JSON-RPC 2.0 format
type EnclosureHandler struct {
	logger  *logger.Logger
	service *service.ZooService
}

// NewEnclosureHandler creates a new enclosure handler
func NewEnclosureHandler(logger *logger.Logger, svc *service.ZooService) *EnclosureHandler {
	return &EnclosureHandler{
		logger:  logger.WithComponent("enclosure-handler"),
		service: svc,
	}
}

// OpenEnclosureRequest opens an enclosure. An empty policy uses the server default.
type OpenEnclosureRequest struct {
	Capacity int    `json:"capacity" example:"50"`
	Policy   string `json:"capacity_policy,omitempty" example:"advisory"`
}

// ListEnclosuresResponse lists enclosures in opening order
type ListEnclosuresResponse struct {
	Enclosures []query.EnclosureView `json:"enclosures"`
}

// AnimalsResponse lists the animals in one enclosure
type AnimalsResponse struct {
	EnclosureID string            `json:"enclosure_id"`
	Animals     []animal.Snapshot `json:"animals"`
}

// DescribeResponse carries the printable animal listing
type DescribeResponse struct {
	EnclosureID string `json:"enclosure_id"`
	Description string `json:"description"`
}

// AdmitRequest admits a new animal
type AdmitRequest struct {
	EnclosureID string     `json:"enclosure_id" example:"E1"`
	Animal      AnimalSpec `json:"animal"`
}

// Open handles POST /api/v1/enclosure.Open
// @Summary Open an enclosure
// @Tags enclosure
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[OpenEnclosureRequest] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[query.EnclosureView]
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid capacity or policy"
// @Router /api/v1/enclosure.Open [post]
func (h *EnclosureHandler) Open(w http.ResponseWriter, r *http.Request) {
	var params OpenEnclosureRequest
	req, ok := decodeCall(r, &params)
	if !ok {
		return
	}

	var policy enclosure.CapacityPolicy
	if params.Policy != "" {
		p, err := enclosure.ParseCapacityPolicy(params.Policy)
		if err != nil {
			jsonrpcx.WithDomainError(r, req.ID, err)
			return
		}
		policy = p
	}

	e, err := h.service.OpenEnclosure(r.Context(), params.Capacity, policy)
	if err != nil {
		h.logger.Warn("Open enclosure failed", zap.Error(err))
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}

	h.logger.Info("Enclosure opened",
		zap.String("enclosureId", e.ID().String()),
		zap.Int("capacity", e.Capacity()))

	jsonrpcx.Success(w, req.ID, query.NewEnclosureView(e))
}

// List handles POST /api/v1/enclosure.List
// @Summary List enclosures
// @Tags enclosure
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[any] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[ListEnclosuresResponse]
// @Router /api/v1/enclosure.List [post]
func (h *EnclosureHandler) List(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCall(r, nil)
	if !ok {
		return
	}

	views, err := h.service.Enclosures(r.Context())
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}
	jsonrpcx.Success(w, req.ID, ListEnclosuresResponse{Enclosures: views})
}

// Animals handles POST /api/v1/enclosure.Animals
// @Summary Snapshots of the animals in an enclosure
// @Tags enclosure
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[EnclosureParams] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[AnimalsResponse]
// @Router /api/v1/enclosure.Animals [post]
func (h *EnclosureHandler) Animals(w http.ResponseWriter, r *http.Request) {
	var params EnclosureParams
	req, ok := decodeCall(r, &params)
	if !ok {
		return
	}

	snaps, err := h.service.EnclosureAnimals(r.Context(), shared.ID(params.EnclosureID))
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}
	jsonrpcx.Success(w, req.ID, AnimalsResponse{EnclosureID: params.EnclosureID, Animals: snaps})
}

// Describe handles POST /api/v1/enclosure.Describe
// @Summary Printable animal listing
// @Tags enclosure
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[EnclosureParams] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[DescribeResponse]
// @Router /api/v1/enclosure.Describe [post]
func (h *EnclosureHandler) Describe(w http.ResponseWriter, r *http.Request) {
	var params EnclosureParams
	req, ok := decodeCall(r, &params)
	if !ok {
		return
	}

	desc, err := h.service.DescribeEnclosure(r.Context(), shared.ID(params.EnclosureID))
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}
	jsonrpcx.Success(w, req.ID, DescribeResponse{EnclosureID: params.EnclosureID, Description: desc})
}

// Admit handles POST /api/v1/enclosure.Admit
// @Summary Admit a new animal
// @Description Builds the animal from its species and traits and adds it to the enclosure
// @Tags enclosure
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[AdmitRequest] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[animal.Snapshot]
// @Failure 400 {object} jsonrpcx.ErrorResponse "Unknown enclosure, invalid animal or enclosure full"
// @Router /api/v1/enclosure.Admit [post]
func (h *EnclosureHandler) Admit(w http.ResponseWriter, r *http.Request) {
	var params AdmitRequest
	req, ok := decodeCall(r, &params)
	if !ok {
		return
	}

	a, err := params.Animal.Build()
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}

	if err := h.service.Admit(r.Context(), shared.ID(params.EnclosureID), a); err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}

	h.logger.Info("Animal admitted",
		zap.String("enclosureId", params.EnclosureID),
		zap.String("animal", a.Name()),
		zap.String("species", a.Species().String()))

	jsonrpcx.Success(w, req.ID, animal.Snap(a))
}

// Release handles POST /api/v1/enclosure.Release
// @Summary Release an animal from its enclosure
// @Tags enclosure
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[AnimalRef] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[animal.Snapshot]
// @Router /api/v1/enclosure.Release [post]
func (h *EnclosureHandler) Release(w http.ResponseWriter, r *http.Request) {
	var params AnimalRef
	req, ok := decodeCall(r, &params)
	if !ok {
		return
	}

	id := shared.ID(params.EnclosureID)
	a, err := h.service.FindAnimal(r.Context(), id, params.Name)
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}
	if err := h.service.Release(r.Context(), id, a); err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, animal.Snap(a))
}
