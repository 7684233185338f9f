package staff

import (
	"fmt"

	"github.com/danghamo/zoo/internal/domain/shared"
)

// IDPrefix prefixes every employee identifier
const IDPrefix = "EMP"

// ErrMissingZoo is returned when an employee is hired without a zoo
var ErrMissingZoo = fmt.Errorf("employee requires a zoo: %w", shared.ErrInvalidInput)

var defaultSequence = shared.NewSequence(IDPrefix)

// DefaultSequence returns the process-wide employee id sequence
func DefaultSequence() *shared.Sequence {
	return defaultSequence
}

// Role is an employee's job
type Role string

const (
	RoleVeterinarian Role = "Veterinarian"
	RoleZookeeper    Role = "Zookeeper"
)

// String returns string representation
func (r Role) String() string {
	return string(r)
}

// Member is any employee of a zoo
type Member interface {
	ID() shared.ID
	Name() string
	Role() Role
	ZooName() string
}

// Registry is the zoo an employee registers into when hired
type Registry interface {
	Name() string
	AddEmployee(m Member)
}

// Option configures an employee at construction
type Option func(*options)

type options struct {
	sequence *shared.Sequence
}

// WithSequence allocates the id from seq instead of the process-wide sequence
func WithSequence(seq *shared.Sequence) Option {
	return func(o *options) {
		if seq != nil {
			o.sequence = seq
		}
	}
}

// Employee holds the state shared by every role
type Employee struct {
	id   shared.ID
	name string
	zoo  Registry
}

func newEmployee(name string, zoo Registry, opts []Option) (Employee, error) {
	if zoo == nil {
		return Employee{}, shared.WrapDomainErrorf(ErrMissingZoo, shared.ErrCodeMissingZoo, "cannot hire %s", name)
	}

	o := options{sequence: defaultSequence}
	for _, opt := range opts {
		opt(&o)
	}

	return Employee{
		id:   o.sequence.Next(),
		name: name,
		zoo:  zoo,
	}, nil
}

// ID returns the employee identifier
func (e *Employee) ID() shared.ID {
	return e.id
}

// Name returns the employee's name
func (e *Employee) Name() string {
	return e.name
}

// ZooName returns the employing zoo's name
func (e *Employee) ZooName() string {
	return e.zoo.Name()
}
