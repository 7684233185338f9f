package staff

import (
	"github.com/danghamo/zoo/internal/domain/animal"
)

// TreatmentStep is how much health one treatment restores
const TreatmentStep = 10

// TreatmentOutcome tells whether a treatment changed anything
type TreatmentOutcome string

const (
	Treated        TreatmentOutcome = "treated"
	AlreadyHealthy TreatmentOutcome = "already_healthy"
)

// String returns string representation
func (o TreatmentOutcome) String() string {
	return string(o)
}

// Treatment records the result of one treatment
type Treatment struct {
	Animal  string           `json:"animal"`
	Outcome TreatmentOutcome `json:"outcome"`
	Before  int              `json:"health_before"`
	After   int              `json:"health_after"`
}

// Treat returns health after one treatment: min(health+TreatmentStep, MaxHealth)
func Treat(health int) int {
	return min(health+TreatmentStep, animal.MaxHealth)
}

// Veterinarian treats animals
type Veterinarian struct {
	Employee
	licensed bool
}

// NewVeterinarian hires a veterinarian into zoo
func NewVeterinarian(name string, zoo Registry, licensed bool, opts ...Option) (*Veterinarian, error) {
	emp, err := newEmployee(name, zoo, opts)
	if err != nil {
		return nil, err
	}

	v := &Veterinarian{Employee: emp, licensed: licensed}
	zoo.AddEmployee(v)

	return v, nil
}

// Role returns RoleVeterinarian
func (v *Veterinarian) Role() Role {
	return RoleVeterinarian
}

// Licensed returns the license status
func (v *Veterinarian) Licensed() bool {
	return v.licensed
}

// TreatAnimal raises health by TreatmentStep up to MaxHealth. A healthy
// animal is left untouched and reported as AlreadyHealthy.
func (v *Veterinarian) TreatAnimal(a animal.Animal) Treatment {
	before := a.Health()
	if before >= animal.MaxHealth {
		return Treatment{Animal: a.Name(), Outcome: AlreadyHealthy, Before: before, After: before}
	}

	a.SetHealth(Treat(before))

	return Treatment{Animal: a.Name(), Outcome: Treated, Before: before, After: a.Health()}
}
