package staff

import (
	"errors"

	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/shared"
)

// Destination is an enclosure an animal can be moved into
type Destination interface {
	animal.Holder
	CanAccept() error
}

// reinserter restores an animal at the position it was removed from
type reinserter interface {
	IndexOf(a animal.Animal) int
	InsertAnimal(i int, a animal.Animal)
}

// Zookeeper feeds and relocates animals
type Zookeeper struct {
	Employee
	shift string
}

// NewZookeeper hires a zookeeper into zoo
func NewZookeeper(name string, zoo Registry, shift string, opts ...Option) (*Zookeeper, error) {
	emp, err := newEmployee(name, zoo, opts)
	if err != nil {
		return nil, err
	}

	k := &Zookeeper{Employee: emp, shift: shift}
	zoo.AddEmployee(k)

	return k, nil
}

// Role returns RoleZookeeper
func (k *Zookeeper) Role() Role {
	return RoleZookeeper
}

// Shift returns the shift label
func (k *Zookeeper) Shift() string {
	return k.shift
}

// FeedAnimal feeds a
func (k *Zookeeper) FeedAnimal(a animal.Animal) animal.Meal {
	return a.Feed()
}

// MoveAnimalToEnclosure takes a out of its current enclosure, if it has
// one, and puts it into target. The target is checked before anything is
// removed, and a failed add puts the animal back where it was.
func (k *Zookeeper) MoveAnimalToEnclosure(a animal.Animal, target Destination) error {
	if target == nil {
		return shared.ErrInvalidInputf("no target enclosure for %s", a.Name())
	}

	current, placed := a.Enclosure()
	if !placed || current != animal.Holder(target) {
		if err := target.CanAccept(); err != nil {
			return err
		}
	}

	position := -1
	if placed {
		if r, ok := current.(reinserter); ok {
			position = r.IndexOf(a)
		}
		if err := current.RemoveAnimal(a); err != nil {
			return err
		}
	}

	if err := target.AddAnimal(a); err != nil {
		if placed {
			return errors.Join(err, restore(current, position, a))
		}
		return err
	}

	return nil
}

// restore puts a back into holder, at position when the holder supports it
func restore(holder animal.Holder, position int, a animal.Animal) error {
	if r, ok := holder.(reinserter); ok && position >= 0 {
		r.InsertAnimal(position, a)
		return nil
	}
	return holder.AddAnimal(a)
}

// Compile-time role checks
var (
	_ Member = (*Veterinarian)(nil)
	_ Member = (*Zookeeper)(nil)
)
