package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/danghamo/zoo/internal/app/command"
	"github.com/danghamo/zoo/internal/app/handler"
	"github.com/danghamo/zoo/internal/app/query"
	zooevents "github.com/danghamo/zoo/internal/cqrs"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/enclosure"
	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/internal/domain/staff"
	"github.com/danghamo/zoo/internal/domain/zoo"
	"github.com/danghamo/zoo/pkg/logger"
)

// ZooService is the typed entry point to one zoo. Every mutation goes
// through the command handler, which publishes the matching event.
// Calls are serialized so the zoo can be shared by concurrent callers.
//
// When publishing fails after the domain change was applied, methods
// return both the result and the wrapped publish error.
type ZooService struct {
	mu       sync.Mutex
	zoo      *zoo.Zoo
	commands command.CommandHandler
	queries  query.QueryHandler
}

// NewZooService wires command and query handlers for z
func NewZooService(z *zoo.Zoo, publisher zooevents.EventPublisher, log *logger.Logger, opts ...handler.Option) *ZooService {
	return &ZooService{
		zoo:      z,
		commands: handler.NewZooCommandHandler(z, publisher, log, opts...),
		queries:  handler.NewZooQueryHandler(z),
	}
}

// Zoo returns the underlying aggregate
func (s *ZooService) Zoo() *zoo.Zoo {
	return s.zoo
}

// OpenEnclosure creates an enclosure. An empty policy uses the configured default.
func (s *ZooService) OpenEnclosure(ctx context.Context, capacity int, policy enclosure.CapacityPolicy) (*enclosure.Enclosure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return resultAs[*enclosure.Enclosure](s.commands.Handle(ctx, command.NewOpenEnclosureCommand(s.zoo.Name(), capacity, policy)))
}

// HireVeterinarian hires a veterinarian
func (s *ZooService) HireVeterinarian(ctx context.Context, name string, licensed bool) (*staff.Veterinarian, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return resultAs[*staff.Veterinarian](s.commands.Handle(ctx, command.NewHireVeterinarianCommand(s.zoo.Name(), name, licensed)))
}

// HireZookeeper hires a zookeeper
func (s *ZooService) HireZookeeper(ctx context.Context, name, shift string) (*staff.Zookeeper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return resultAs[*staff.Zookeeper](s.commands.Handle(ctx, command.NewHireZookeeperCommand(s.zoo.Name(), name, shift)))
}

// Admit adds a to the enclosure with the given id
func (s *ZooService) Admit(ctx context.Context, enclosureID shared.ID, a animal.Animal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.commands.Handle(ctx, command.NewAdmitAnimalCommand(enclosureID, a))
	return err
}

// Release removes a from the enclosure with the given id
func (s *ZooService) Release(ctx context.Context, enclosureID shared.ID, a animal.Animal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.commands.Handle(ctx, command.NewReleaseAnimalCommand(enclosureID, a))
	return err
}

// Treat has the veterinarian with the given id treat a
func (s *ZooService) Treat(ctx context.Context, veterinarianID shared.ID, a animal.Animal) (staff.Treatment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return resultAs[staff.Treatment](s.commands.Handle(ctx, command.NewTreatAnimalCommand(veterinarianID, a)))
}

// Feed has the zookeeper with the given id feed a
func (s *ZooService) Feed(ctx context.Context, zookeeperID shared.ID, a animal.Animal) (animal.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return resultAs[animal.Meal](s.commands.Handle(ctx, command.NewFeedAnimalCommand(zookeeperID, a)))
}

// Move has the zookeeper with the given id move a into the target enclosure
func (s *ZooService) Move(ctx context.Context, zookeeperID shared.ID, a animal.Animal, target shared.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.commands.Handle(ctx, command.NewMoveAnimalCommand(zookeeperID, a, target))
	return err
}

// FindAnimal returns the first animal named name in an enclosure
func (s *ZooService) FindAnimal(ctx context.Context, enclosureID shared.ID, name string) (animal.Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return answerAs[animal.Animal](s.queries.Handle(ctx, query.NewFindAnimalQuery(enclosureID, name)))
}

// Employee looks up an employee by id
func (s *ZooService) Employee(ctx context.Context, id shared.ID) (staff.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.zoo.FindEmployee(id)
}

// Report renders the zoo summary
func (s *ZooService) Report(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return answerAs[string](s.queries.Handle(ctx, query.NewGetReportQuery()))
}

// Roster lists employees in hiring order
func (s *ZooService) Roster(ctx context.Context) ([]zoo.RosterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return answerAs[[]zoo.RosterEntry](s.queries.Handle(ctx, query.NewGetRosterQuery()))
}

// Enclosures lists enclosure read models in registration order
func (s *ZooService) Enclosures(ctx context.Context) ([]query.EnclosureView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return answerAs[[]query.EnclosureView](s.queries.Handle(ctx, query.NewListEnclosuresQuery()))
}

// EnclosureAnimals returns snapshots of the animals in an enclosure
func (s *ZooService) EnclosureAnimals(ctx context.Context, enclosureID shared.ID) ([]animal.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return answerAs[[]animal.Snapshot](s.queries.Handle(ctx, query.NewGetEnclosureAnimalsQuery(enclosureID)))
}

// DescribeEnclosure lists an enclosure's animals one per line
func (s *ZooService) DescribeEnclosure(ctx context.Context, enclosureID shared.ID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return answerAs[string](s.queries.Handle(ctx, query.NewDescribeEnclosureQuery(enclosureID)))
}

func resultAs[T any](res command.CommandResult, err error) (T, error) {
	return answerAs[T](res.Data, err)
}

func answerAs[T any](data interface{}, err error) (T, error) {
	v, ok := data.(T)
	if !ok {
		var zero T
		if err != nil {
			return zero, err
		}
		return zero, fmt.Errorf("unexpected result type %T", data)
	}
	return v, err
}
