package handler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/app/command"
	zooevents "github.com/danghamo/zoo/internal/cqrs"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/enclosure"
	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/internal/domain/staff"
	"github.com/danghamo/zoo/internal/domain/zoo"
	"github.com/danghamo/zoo/pkg/logger"
)

// ZooCommandHandler runs zoo commands against the domain and publishes the resulting events
type ZooCommandHandler struct {
	zoo           *zoo.Zoo
	publisher     zooevents.EventPublisher
	logger        *logger.Logger
	defaultPolicy enclosure.CapacityPolicy
	enclosureSeq  *shared.Sequence
	staffSeq      *shared.Sequence
	now           func() time.Time
}

// Option configures a ZooCommandHandler
type Option func(*ZooCommandHandler)

// WithDefaultCapacityPolicy sets the policy for enclosures opened without one
func WithDefaultCapacityPolicy(p enclosure.CapacityPolicy) Option {
	return func(h *ZooCommandHandler) {
		if p.IsValid() {
			h.defaultPolicy = p
		}
	}
}

// WithSequences allocates enclosure and employee ids from the given sequences
func WithSequences(enclosures, employees *shared.Sequence) Option {
	return func(h *ZooCommandHandler) {
		h.enclosureSeq = enclosures
		h.staffSeq = employees
	}
}

// WithClock overrides the event timestamp source
func WithClock(now func() time.Time) Option {
	return func(h *ZooCommandHandler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewZooCommandHandler creates a new zoo command handler
func NewZooCommandHandler(z *zoo.Zoo, publisher zooevents.EventPublisher, log *logger.Logger, opts ...Option) *ZooCommandHandler {
	if publisher == nil {
		publisher = zooevents.NopPublisher{}
	}
	if log == nil {
		log = logger.NewNop()
	}

	h := &ZooCommandHandler{
		zoo:           z,
		publisher:     publisher,
		logger:        log.WithComponent("zoo-command-handler").WithZoo(z.Name()),
		defaultPolicy: enclosure.Advisory,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle handles zoo commands
func (h *ZooCommandHandler) Handle(ctx context.Context, cmd command.Command) (command.CommandResult, error) {
	switch c := cmd.(type) {
	case command.OpenEnclosureCommand:
		return h.handleOpenEnclosure(ctx, c)
	case command.HireVeterinarianCommand:
		return h.handleHireVeterinarian(ctx, c)
	case command.HireZookeeperCommand:
		return h.handleHireZookeeper(ctx, c)
	case command.AdmitAnimalCommand:
		return h.handleAdmitAnimal(ctx, c)
	case command.ReleaseAnimalCommand:
		return h.handleReleaseAnimal(ctx, c)
	case command.TreatAnimalCommand:
		return h.handleTreatAnimal(ctx, c)
	case command.FeedAnimalCommand:
		return h.handleFeedAnimal(ctx, c)
	case command.MoveAnimalCommand:
		return h.handleMoveAnimal(ctx, c)
	default:
		return command.CommandResult{}, fmt.Errorf("unknown command type: %T", cmd)
	}
}

func (h *ZooCommandHandler) handleOpenEnclosure(ctx context.Context, cmd command.OpenEnclosureCommand) (command.CommandResult, error) {
	policy := cmd.Policy
	if policy == "" {
		policy = h.defaultPolicy
	}

	e, err := enclosure.New(cmd.Capacity, h.zoo,
		enclosure.WithSequence(h.enclosureSeq),
		enclosure.WithCapacityPolicy(policy),
	)
	if err != nil {
		return command.CommandResult{}, err
	}

	h.logger.Info("Enclosure opened",
		zap.String("enclosureId", e.ID().String()),
		zap.Int("capacity", e.Capacity()),
		zap.String("policy", e.Policy().String()))

	err = h.publish(ctx, &zooevents.EnclosureRegisteredEvent{
		Zoo:         h.zoo.Name(),
		EnclosureID: e.ID().String(),
		Capacity:    e.Capacity(),
		Policy:      e.Policy().String(),
		Timestamp:   h.now(),
		RequestID:   cmd.CommandID(),
	})
	return command.NewSuccessResult("enclosure opened", e), err
}

func (h *ZooCommandHandler) handleHireVeterinarian(ctx context.Context, cmd command.HireVeterinarianCommand) (command.CommandResult, error) {
	v, err := staff.NewVeterinarian(cmd.Name, h.zoo, cmd.Licensed, staff.WithSequence(h.staffSeq))
	if err != nil {
		return command.CommandResult{}, err
	}

	err = h.publishHire(ctx, v, cmd.CommandID())
	return command.NewSuccessResult("veterinarian hired", v), err
}

func (h *ZooCommandHandler) handleHireZookeeper(ctx context.Context, cmd command.HireZookeeperCommand) (command.CommandResult, error) {
	k, err := staff.NewZookeeper(cmd.Name, h.zoo, cmd.Shift, staff.WithSequence(h.staffSeq))
	if err != nil {
		return command.CommandResult{}, err
	}

	err = h.publishHire(ctx, k, cmd.CommandID())
	return command.NewSuccessResult("zookeeper hired", k), err
}

func (h *ZooCommandHandler) publishHire(ctx context.Context, m staff.Member, requestID string) error {
	h.logger.Info("Employee hired",
		zap.String("employeeId", m.ID().String()),
		zap.String("name", m.Name()),
		zap.String("role", m.Role().String()))

	return h.publish(ctx, &zooevents.EmployeeRegisteredEvent{
		Zoo:        h.zoo.Name(),
		EmployeeID: m.ID().String(),
		Name:       m.Name(),
		Role:       m.Role(),
		Timestamp:  h.now(),
		RequestID:  requestID,
	})
}

func (h *ZooCommandHandler) handleAdmitAnimal(ctx context.Context, cmd command.AdmitAnimalCommand) (command.CommandResult, error) {
	if cmd.Animal == nil {
		return command.CommandResult{}, shared.ErrInvalidInputf("no animal to admit")
	}
	e, err := h.zoo.FindEnclosure(cmd.EnclosureID)
	if err != nil {
		return command.CommandResult{}, err
	}

	if err := e.AddAnimal(cmd.Animal); err != nil {
		return command.CommandResult{}, err
	}

	if e.IsOverCapacity() {
		h.logger.Warn("Enclosure is over capacity",
			zap.String("enclosureId", e.ID().String()),
			zap.Int("size", e.Size()),
			zap.Int("capacity", e.Capacity()))
	}

	err = h.publish(ctx, &zooevents.AnimalAddedEvent{
		EnclosureID:  e.ID().String(),
		Animal:       animal.Snap(cmd.Animal),
		Size:         e.Size(),
		OverCapacity: e.IsOverCapacity(),
		Timestamp:    h.now(),
		RequestID:    cmd.CommandID(),
	})
	return command.NewSuccessResult("animal admitted", e), err
}

func (h *ZooCommandHandler) handleReleaseAnimal(ctx context.Context, cmd command.ReleaseAnimalCommand) (command.CommandResult, error) {
	if cmd.Animal == nil {
		return command.CommandResult{}, shared.ErrInvalidInputf("no animal to release")
	}
	e, err := h.zoo.FindEnclosure(cmd.EnclosureID)
	if err != nil {
		return command.CommandResult{}, err
	}

	if err := e.RemoveAnimal(cmd.Animal); err != nil {
		return command.CommandResult{}, err
	}

	err = h.publish(ctx, &zooevents.AnimalRemovedEvent{
		EnclosureID: e.ID().String(),
		Animal:      animal.Snap(cmd.Animal),
		Size:        e.Size(),
		Timestamp:   h.now(),
		RequestID:   cmd.CommandID(),
	})
	return command.NewSuccessResult("animal released", e), err
}

func (h *ZooCommandHandler) handleTreatAnimal(ctx context.Context, cmd command.TreatAnimalCommand) (command.CommandResult, error) {
	if cmd.Animal == nil {
		return command.CommandResult{}, shared.ErrInvalidInputf("no animal to treat")
	}
	vet, err := h.veterinarian(cmd.VeterinarianID)
	if err != nil {
		return command.CommandResult{}, err
	}

	before := animal.Snap(cmd.Animal)
	treatment := vet.TreatAnimal(cmd.Animal)

	h.logger.Debug("Animal treated",
		zap.String("animal", treatment.Animal),
		zap.String("outcome", treatment.Outcome.String()),
		zap.Int("before", treatment.Before),
		zap.Int("after", treatment.After))

	err = h.publish(ctx, &zooevents.AnimalTreatedEvent{
		VeterinarianID: vet.ID().String(),
		EnclosureID:    animal.EnclosureID(cmd.Animal).String(),
		Animal:         treatment.Animal,
		Species:        cmd.Animal.Species(),
		Outcome:        treatment.Outcome,
		HealthBefore:   treatment.Before,
		HealthAfter:    treatment.After,
		Timestamp:      h.now(),
		RequestID:      cmd.CommandID(),
		Changes:        h.changes(before, animal.Snap(cmd.Animal)),
	})
	return command.NewSuccessResult("animal treated", treatment), err
}

func (h *ZooCommandHandler) handleFeedAnimal(ctx context.Context, cmd command.FeedAnimalCommand) (command.CommandResult, error) {
	if cmd.Animal == nil {
		return command.CommandResult{}, shared.ErrInvalidInputf("no animal to feed")
	}
	keeper, err := h.zookeeper(cmd.ZookeeperID)
	if err != nil {
		return command.CommandResult{}, err
	}

	meal := keeper.FeedAnimal(cmd.Animal)

	err = h.publish(ctx, &zooevents.AnimalFedEvent{
		ZookeeperID: keeper.ID().String(),
		EnclosureID: animal.EnclosureID(cmd.Animal).String(),
		Animal:      meal.Animal,
		Species:     meal.Species,
		Sound:       cmd.Animal.MakeSound(),
		Food:        meal.Food,
		Timestamp:   h.now(),
		RequestID:   cmd.CommandID(),
	})
	return command.NewSuccessResult("animal fed", meal), err
}

func (h *ZooCommandHandler) handleMoveAnimal(ctx context.Context, cmd command.MoveAnimalCommand) (command.CommandResult, error) {
	if cmd.Animal == nil {
		return command.CommandResult{}, shared.ErrInvalidInputf("no animal to move")
	}
	keeper, err := h.zookeeper(cmd.ZookeeperID)
	if err != nil {
		return command.CommandResult{}, err
	}
	target, err := h.zoo.FindEnclosure(cmd.TargetEnclosureID)
	if err != nil {
		return command.CommandResult{}, err
	}

	from := animal.EnclosureID(cmd.Animal)
	before := animal.Snap(cmd.Animal)

	if err := keeper.MoveAnimalToEnclosure(cmd.Animal, target); err != nil {
		h.logger.Warn("Move failed",
			zap.String("animal", cmd.Animal.Name()),
			zap.String("target", target.ID().String()),
			zap.Error(err))
		return command.CommandResult{}, err
	}

	h.logger.Info("Animal moved",
		zap.String("animal", cmd.Animal.Name()),
		zap.String("from", from.String()),
		zap.String("to", target.ID().String()))

	err = h.publish(ctx, &zooevents.AnimalMovedEvent{
		ZookeeperID:     keeper.ID().String(),
		Animal:          cmd.Animal.Name(),
		Species:         cmd.Animal.Species(),
		FromEnclosureID: from.String(),
		ToEnclosureID:   target.ID().String(),
		Timestamp:       h.now(),
		RequestID:       cmd.CommandID(),
		Changes:         h.changes(before, animal.Snap(cmd.Animal)),
	})
	return command.NewSuccessResult("animal moved", target), err
}

func (h *ZooCommandHandler) veterinarian(id shared.ID) (*staff.Veterinarian, error) {
	m, err := h.zoo.FindEmployee(id)
	if err != nil {
		return nil, err
	}
	v, ok := m.(*staff.Veterinarian)
	if !ok {
		return nil, shared.WrapDomainErrorf(shared.ErrInvalidInput, shared.ErrCodeInvalidRole,
			"%s is a %s, not a veterinarian", m.Name(), m.Role())
	}
	return v, nil
}

func (h *ZooCommandHandler) zookeeper(id shared.ID) (*staff.Zookeeper, error) {
	m, err := h.zoo.FindEmployee(id)
	if err != nil {
		return nil, err
	}
	k, ok := m.(*staff.Zookeeper)
	if !ok {
		return nil, shared.WrapDomainErrorf(shared.ErrInvalidInput, shared.ErrCodeInvalidRole,
			"%s is a %s, not a zookeeper", m.Name(), m.Role())
	}
	return k, nil
}

// changes diffs two snapshots; a failed diff only drops the changes field
func (h *ZooCommandHandler) changes(before, after animal.Snapshot) map[string]interface{} {
	changes, err := zooevents.CreateChanges(before, after)
	if err != nil {
		h.logger.Warn("Failed to create changes", zap.Error(err))
		return nil
	}
	return changes
}

// publish sends event after the domain change has been applied
func (h *ZooCommandHandler) publish(ctx context.Context, event interface{}) error {
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Error("Failed to publish event",
			zap.String("event", fmt.Sprintf("%T", event)),
			zap.Error(err))
		return fmt.Errorf("failed to publish %T: %w", event, err)
	}
	return nil
}
