package handler

import (
	"context"
	"fmt"

	"github.com/danghamo/zoo/internal/app/query"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/internal/domain/zoo"
)

// ZooQueryHandler answers read-only zoo queries
type ZooQueryHandler struct {
	zoo *zoo.Zoo
}

// NewZooQueryHandler creates a new zoo query handler
func NewZooQueryHandler(z *zoo.Zoo) *ZooQueryHandler {
	return &ZooQueryHandler{zoo: z}
}

// Handle handles zoo queries
func (h *ZooQueryHandler) Handle(ctx context.Context, q query.Query) (interface{}, error) {
	switch qu := q.(type) {
	case query.GetReportQuery:
		return h.zoo.Render(), nil
	case query.GetRosterQuery:
		return h.zoo.Roster(), nil
	case query.ListEnclosuresQuery:
		return h.handleListEnclosures(ctx, qu)
	case query.GetEnclosureAnimalsQuery:
		return h.handleGetEnclosureAnimals(ctx, qu)
	case query.DescribeEnclosureQuery:
		return h.handleDescribeEnclosure(ctx, qu)
	case query.FindAnimalQuery:
		return h.handleFindAnimal(ctx, qu)
	default:
		return nil, fmt.Errorf("unknown query type: %T", q)
	}
}

func (h *ZooQueryHandler) handleListEnclosures(ctx context.Context, q query.ListEnclosuresQuery) ([]query.EnclosureView, error) {
	enclosures := h.zoo.Enclosures()
	views := make([]query.EnclosureView, 0, len(enclosures))
	for _, e := range enclosures {
		views = append(views, query.NewEnclosureView(e))
	}
	return views, nil
}

func (h *ZooQueryHandler) handleGetEnclosureAnimals(ctx context.Context, q query.GetEnclosureAnimalsQuery) ([]animal.Snapshot, error) {
	e, err := h.zoo.FindEnclosure(q.EnclosureID)
	if err != nil {
		return nil, err
	}

	snapshots := make([]animal.Snapshot, 0, e.Size())
	for a := range e.All() {
		snapshots = append(snapshots, animal.Snap(a))
	}
	return snapshots, nil
}

func (h *ZooQueryHandler) handleDescribeEnclosure(ctx context.Context, q query.DescribeEnclosureQuery) (string, error) {
	e, err := h.zoo.FindEnclosure(q.EnclosureID)
	if err != nil {
		return "", err
	}
	return e.Describe(), nil
}

func (h *ZooQueryHandler) handleFindAnimal(ctx context.Context, q query.FindAnimalQuery) (animal.Animal, error) {
	e, err := h.zoo.FindEnclosure(q.EnclosureID)
	if err != nil {
		return nil, err
	}

	for a := range e.All() {
		if a.Name() == q.Name {
			return a, nil
		}
	}
	return nil, shared.ErrNotFoundf("animal %q in enclosure %s", q.Name, q.EnclosureID)
}
