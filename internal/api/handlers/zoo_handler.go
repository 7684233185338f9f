package handlers

import (
	"context"
	"net/http"

	"github.com/danghamo/zoo/internal/api/jsonrpcx"
	"github.com/danghamo/zoo/internal/app/service"
	zooevents "github.com/danghamo/zoo/internal/cqrs"
	"github.com/danghamo/zoo/internal/domain/zoo"
	"github.com/danghamo/zoo/pkg/logger"
)

// Census provides occupancy snapshots
type Census interface {
	Last(ctx context.Context) (*zooevents.ZooCensusEvent, bool)
	Take(ctx context.Context) (*zooevents.ZooCensusEvent, error)
}

// ZooHandler serves whole-zoo queries
type ZooHandler struct {
	logger  *logger.Logger
	service *service.ZooService
	census  Census
}

// NewZooHandler creates a new zoo handler
func NewZooHandler(logger *logger.Logger, svc *service.ZooService, census Census) *ZooHandler {
	return &ZooHandler{
		logger:  logger.WithComponent("zoo-handler"),
		service: svc,
		census:  census,
	}
}

// InfoResponse summarizes the zoo
type InfoResponse struct {
	Name       string `json:"name" example:"Hadiqat El-Hayawan"`
	Location   string `json:"location" example:"Gize, Egypt"`
	Enclosures int    `json:"enclosures" example:"7"`
	Employees  int    `json:"employees" example:"2"`
}

// ReportResponse carries the rendered report
type ReportResponse struct {
	Report string `json:"report"`
}

// RosterResponse lists employees in hiring order
type RosterResponse struct {
	Employees []zoo.RosterEntry `json:"employees"`
}

// Info handles POST /api/v1/zoo.Info
// @Summary Zoo summary
// @Tags zoo
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[any] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[InfoResponse]
// @Router /api/v1/zoo.Info [post]
func (h *ZooHandler) Info(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCall(r, nil)
	if !ok {
		return
	}

	z := h.service.Zoo()
	jsonrpcx.Success(w, req.ID, InfoResponse{
		Name:       z.Name(),
		Location:   z.Location(),
		Enclosures: z.EnclosureCount(),
		Employees:  z.EmployeeCount(),
	})
}

// Report handles POST /api/v1/zoo.Report
// @Summary Render the zoo report
// @Description Name, location, enclosure ids and the staff roster as printable text
// @Tags zoo
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[any] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[ReportResponse]
// @Router /api/v1/zoo.Report [post]
func (h *ZooHandler) Report(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCall(r, nil)
	if !ok {
		return
	}

	report, err := h.service.Report(r.Context())
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}
	jsonrpcx.Success(w, req.ID, ReportResponse{Report: report})
}

// Roster handles POST /api/v1/zoo.Roster
// @Summary List employees
// @Tags zoo
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[any] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[RosterResponse]
// @Router /api/v1/zoo.Roster [post]
func (h *ZooHandler) Roster(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCall(r, nil)
	if !ok {
		return
	}

	roster, err := h.service.Roster(r.Context())
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}
	jsonrpcx.Success(w, req.ID, RosterResponse{Employees: roster})
}

// Census handles POST /api/v1/zoo.Census
// @Summary Latest occupancy census
// @Description Returns the last periodic census, or a fresh one when none was taken yet
// @Tags zoo
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[any] true "JSON-RPC request"
// @Success 200 {object} jsonrpcx.ResponseT[zooevents.ZooCensusEvent]
// @Router /api/v1/zoo.Census [post]
func (h *ZooHandler) Census(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCall(r, nil)
	if !ok {
		return
	}

	if census, found := h.census.Last(r.Context()); found {
		jsonrpcx.Success(w, req.ID, census)
		return
	}

	census, err := h.census.Take(r.Context())
	if err != nil {
		jsonrpcx.WithDomainError(r, req.ID, err)
		return
	}
	jsonrpcx.Success(w, req.ID, census)
}
