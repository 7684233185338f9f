package animal

import (
	"strconv"
	"strings"

	"github.com/danghamo/zoo/internal/domain/shared"
)

const (
	// MaxHealth is the ceiling treatment clamps to
	MaxHealth = 100
	// BirthHealth is the health of a newborn animal
	BirthHealth = 100
)

// Age is kept as given by the caller. It is usually a number of years but
// may be arbitrary text.
type Age string

// Newborn is the age of an animal created from birth
const Newborn Age = "0"

// Years creates an age from a whole number of years
func Years(n int) Age {
	return Age(strconv.Itoa(n))
}

// Years returns the numeric value of the age when it is a whole number
func (a Age) Years() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(a)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns string representation
func (a Age) String() string {
	return string(a)
}

// Holder is anything an animal can be kept in. Enclosures implement it.
type Holder interface {
	ID() shared.ID
	AddAnimal(a Animal) error
	RemoveAnimal(a Animal) error
}

// Animal is the behaviour shared by every species
type Animal interface {
	Name() string
	Age() Age
	Health() int
	SetHealth(health int)

	// Enclosure returns the enclosure currently holding the animal, or
	// false when it has not been placed yet.
	Enclosure() (Holder, bool)
	// AssignEnclosure records h as the animal's current enclosure
	AssignEnclosure(h Holder)
	// ReleaseEnclosure clears the back-reference if it still points at h
	ReleaseEnclosure(h Holder)

	Species() Species
	MakeSound() Sound
	Feed() Meal
}

// Base holds the state common to every species. Species embed it.
type Base struct {
	name      string
	age       Age
	health    int
	enclosure Holder
}

func newBase(name string, age Age, health int) Base {
	return Base{
		name:   name,
		age:    age,
		health: health,
	}
}

// Name returns the animal's name
func (b *Base) Name() string {
	return b.name
}

// Age returns the animal's age
func (b *Base) Age() Age {
	return b.age
}

// Health returns current health
func (b *Base) Health() int {
	return b.health
}

// SetHealth overwrites health. Bounds are the caller's concern.
func (b *Base) SetHealth(health int) {
	b.health = health
}

// Enclosure returns the current enclosure, if any
func (b *Base) Enclosure() (Holder, bool) {
	if b.enclosure == nil {
		return nil, false
	}
	return b.enclosure, true
}

// AssignEnclosure sets the current enclosure
func (b *Base) AssignEnclosure(h Holder) {
	b.enclosure = h
}

// ReleaseEnclosure clears the current enclosure when it is h
func (b *Base) ReleaseEnclosure(h Holder) {
	if b.enclosure == h {
		b.enclosure = nil
	}
}

// IsHealthy reports whether the animal is at full health
func IsHealthy(a Animal) bool {
	return a.Health() >= MaxHealth
}

// EnclosureID returns the id of the animal's enclosure or an empty ID
func EnclosureID(a Animal) shared.ID {
	h, ok := a.Enclosure()
	if !ok {
		return ""
	}
	return h.ID()
}
