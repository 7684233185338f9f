package enclosure

import (
	"fmt"
	"iter"
	"strings"

	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/shared"
)

// IDPrefix prefixes every enclosure identifier
const IDPrefix = "E"

// EmptyDescription is what Describe reports for an enclosure with no animals
const EmptyDescription = "No Animals In the Enclosure"

var (
	// ErrAnimalNotInEnclosure is returned when removing a non-member
	ErrAnimalNotInEnclosure = fmt.Errorf("animal not in enclosure: %w", shared.ErrNotFound)
	// ErrCapacityExceeded is returned by enforced enclosures that are full
	ErrCapacityExceeded = fmt.Errorf("enclosure capacity exceeded: %w", shared.ErrInvalidOperation)
	// ErrMissingZoo is returned when an enclosure is created without a zoo
	ErrMissingZoo = fmt.Errorf("enclosure requires a zoo: %w", shared.ErrInvalidInput)
)

var defaultSequence = shared.NewSequence(IDPrefix)

// DefaultSequence returns the process-wide enclosure id sequence
func DefaultSequence() *shared.Sequence {
	return defaultSequence
}

// Registry is the zoo an enclosure registers itself into
type Registry interface {
	Name() string
	AddEnclosure(e *Enclosure)
}

// Option configures an enclosure at construction
type Option func(*options)

type options struct {
	sequence *shared.Sequence
	policy   CapacityPolicy
}

// WithSequence allocates the id from seq instead of the process-wide sequence
func WithSequence(seq *shared.Sequence) Option {
	return func(o *options) {
		if seq != nil {
			o.sequence = seq
		}
	}
}

// WithCapacityPolicy sets the capacity policy (Advisory by default)
func WithCapacityPolicy(p CapacityPolicy) Option {
	return func(o *options) {
		if p.IsValid() {
			o.policy = p
		}
	}
}

// Enclosure holds animals and belongs to exactly one zoo
type Enclosure struct {
	id       shared.ID
	capacity int
	policy   CapacityPolicy
	zoo      Registry
	animals  []animal.Animal
}

// New creates an enclosure and registers it into zoo
func New(capacity int, zoo Registry, opts ...Option) (*Enclosure, error) {
	if zoo == nil {
		return nil, shared.WrapDomainError(ErrMissingZoo, shared.ErrCodeMissingZoo, "cannot create enclosure")
	}
	if capacity <= 0 {
		return nil, shared.WrapDomainErrorf(shared.ErrInvalidInput, shared.ErrCodeInvalidCapacity,
			"capacity must be positive, got %d", capacity)
	}

	o := options{sequence: defaultSequence, policy: Advisory}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Enclosure{
		id:       o.sequence.Next(),
		capacity: capacity,
		policy:   o.policy,
		zoo:      zoo,
		animals:  make([]animal.Animal, 0),
	}
	zoo.AddEnclosure(e)

	return e, nil
}

// ID returns the enclosure identifier
func (e *Enclosure) ID() shared.ID {
	return e.id
}

// Capacity returns the stated capacity
func (e *Enclosure) Capacity() int {
	return e.capacity
}

// Policy returns the capacity policy
func (e *Enclosure) Policy() CapacityPolicy {
	return e.policy
}

// ZooName returns the owning zoo's name
func (e *Enclosure) ZooName() string {
	return e.zoo.Name()
}

// Size returns the number of animals held
func (e *Enclosure) Size() int {
	return len(e.animals)
}

// IsOverCapacity reports whether more animals are held than the capacity allows
func (e *Enclosure) IsOverCapacity() bool {
	return len(e.animals) > e.capacity
}

// CanAccept returns ErrCapacityExceeded when the policy is enforced and
// the enclosure is full
func (e *Enclosure) CanAccept() error {
	if e.policy == Enforced && len(e.animals) >= e.capacity {
		return shared.WrapDomainErrorf(ErrCapacityExceeded, shared.ErrCodeCapacityExceeded,
			"enclosure %s is full (%d/%d)", e.id, len(e.animals), e.capacity)
	}
	return nil
}

// AddAnimal appends a and points its back-reference here. Membership in
// another enclosure is not checked; callers move animals through a
// zookeeper to keep membership unique.
func (e *Enclosure) AddAnimal(a animal.Animal) error {
	if err := e.CanAccept(); err != nil {
		return err
	}

	e.animals = append(e.animals, a)
	a.AssignEnclosure(e)

	return nil
}

// RemoveAnimal removes the first occurrence of a. The back-reference is
// cleared once no occurrence is left.
func (e *Enclosure) RemoveAnimal(a animal.Animal) error {
	i := e.IndexOf(a)
	if i < 0 {
		return shared.WrapDomainErrorf(ErrAnimalNotInEnclosure, shared.ErrCodeAnimalNotInEnclosure,
			"%s is not in enclosure %s", a.Name(), e.id)
	}

	e.animals = append(e.animals[:i], e.animals[i+1:]...)
	if e.Count(a) == 0 {
		a.ReleaseEnclosure(e)
	}
	return nil
}

// IndexOf returns the position of the first occurrence of a, or -1
func (e *Enclosure) IndexOf(a animal.Animal) int {
	for i, member := range e.animals {
		if member == a {
			return i
		}
	}
	return -1
}

// InsertAnimal puts a back at position i, clamped to the list bounds.
// Capacity is not checked: it restores an animal that was just removed.
func (e *Enclosure) InsertAnimal(i int, a animal.Animal) {
	i = max(0, min(i, len(e.animals)))
	e.animals = append(e.animals, nil)
	copy(e.animals[i+1:], e.animals[i:])
	e.animals[i] = a
	a.AssignEnclosure(e)
}

// Contains reports whether a is currently held
func (e *Enclosure) Contains(a animal.Animal) bool {
	return e.Count(a) > 0
}

// Count returns how many times a appears in the membership list
func (e *Enclosure) Count(a animal.Animal) int {
	n := 0
	for _, member := range e.animals {
		if member == a {
			n++
		}
	}
	return n
}

// Animals returns a copy of the members in insertion order
func (e *Enclosure) Animals() []animal.Animal {
	out := make([]animal.Animal, len(e.animals))
	copy(out, e.animals)
	return out
}

// All iterates over the members present when All was called
func (e *Enclosure) All() iter.Seq[animal.Animal] {
	members := e.Animals()
	return func(yield func(animal.Animal) bool) {
		for _, a := range members {
			if !yield(a) {
				return
			}
		}
	}
}

// AnimalNames returns member names in insertion order
func (e *Enclosure) AnimalNames() []string {
	names := make([]string, 0, len(e.animals))
	for _, a := range e.animals {
		names = append(names, a.Name())
	}
	return names
}

// Describe lists member names one per line, or EmptyDescription
func (e *Enclosure) Describe() string {
	if len(e.animals) == 0 {
		return EmptyDescription
	}
	return strings.Join(e.AnimalNames(), "\n")
}
