package command

import (
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/enclosure"
	"github.com/danghamo/zoo/internal/domain/shared"
)

// Command types
const (
	TypeOpenEnclosure    = "OpenEnclosure"
	TypeHireVeterinarian = "HireVeterinarian"
	TypeHireZookeeper    = "HireZookeeper"
	TypeAdmitAnimal      = "AdmitAnimal"
	TypeReleaseAnimal    = "ReleaseAnimal"
	TypeTreatAnimal      = "TreatAnimal"
	TypeFeedAnimal       = "FeedAnimal"
	TypeMoveAnimal       = "MoveAnimal"
)

// Zoo Commands

// OpenEnclosureCommand creates an enclosure in the zoo.
// An empty Policy uses the handler's default.
type OpenEnclosureCommand struct {
	BaseCommand
	Capacity int                      `json:"capacity"`
	Policy   enclosure.CapacityPolicy `json:"capacity_policy,omitempty"`
}

// NewOpenEnclosureCommand creates a new open enclosure command
func NewOpenEnclosureCommand(zooName string, capacity int, policy enclosure.CapacityPolicy) OpenEnclosureCommand {
	return OpenEnclosureCommand{
		BaseCommand: NewBaseCommand(TypeOpenEnclosure, zooName),
		Capacity:    capacity,
		Policy:      policy,
	}
}

// HireVeterinarianCommand hires a veterinarian
type HireVeterinarianCommand struct {
	BaseCommand
	Name     string `json:"name"`
	Licensed bool   `json:"licensed"`
}

// NewHireVeterinarianCommand creates a new hire veterinarian command
func NewHireVeterinarianCommand(zooName, name string, licensed bool) HireVeterinarianCommand {
	return HireVeterinarianCommand{
		BaseCommand: NewBaseCommand(TypeHireVeterinarian, zooName),
		Name:        name,
		Licensed:    licensed,
	}
}

// HireZookeeperCommand hires a zookeeper
type HireZookeeperCommand struct {
	BaseCommand
	Name  string `json:"name"`
	Shift string `json:"shift"`
}

// NewHireZookeeperCommand creates a new hire zookeeper command
func NewHireZookeeperCommand(zooName, name, shift string) HireZookeeperCommand {
	return HireZookeeperCommand{
		BaseCommand: NewBaseCommand(TypeHireZookeeper, zooName),
		Name:        name,
		Shift:       shift,
	}
}

// Animal Commands

// AdmitAnimalCommand adds an animal to an enclosure
type AdmitAnimalCommand struct {
	BaseCommand
	EnclosureID shared.ID     `json:"enclosure_id"`
	Animal      animal.Animal `json:"-"`
}

// NewAdmitAnimalCommand creates a new admit animal command
func NewAdmitAnimalCommand(enclosureID shared.ID, a animal.Animal) AdmitAnimalCommand {
	return AdmitAnimalCommand{
		BaseCommand: NewBaseCommand(TypeAdmitAnimal, enclosureID.String()),
		EnclosureID: enclosureID,
		Animal:      a,
	}
}

// ReleaseAnimalCommand removes an animal from an enclosure
type ReleaseAnimalCommand struct {
	BaseCommand
	EnclosureID shared.ID     `json:"enclosure_id"`
	Animal      animal.Animal `json:"-"`
}

// NewReleaseAnimalCommand creates a new release animal command
func NewReleaseAnimalCommand(enclosureID shared.ID, a animal.Animal) ReleaseAnimalCommand {
	return ReleaseAnimalCommand{
		BaseCommand: NewBaseCommand(TypeReleaseAnimal, enclosureID.String()),
		EnclosureID: enclosureID,
		Animal:      a,
	}
}

// TreatAnimalCommand has a veterinarian treat an animal
type TreatAnimalCommand struct {
	BaseCommand
	VeterinarianID shared.ID     `json:"veterinarian_id"`
	Animal         animal.Animal `json:"-"`
}

// NewTreatAnimalCommand creates a new treat animal command
func NewTreatAnimalCommand(veterinarianID shared.ID, a animal.Animal) TreatAnimalCommand {
	return TreatAnimalCommand{
		BaseCommand:    NewBaseCommand(TypeTreatAnimal, veterinarianID.String()),
		VeterinarianID: veterinarianID,
		Animal:         a,
	}
}

// FeedAnimalCommand has a zookeeper feed an animal
type FeedAnimalCommand struct {
	BaseCommand
	ZookeeperID shared.ID     `json:"zookeeper_id"`
	Animal      animal.Animal `json:"-"`
}

// NewFeedAnimalCommand creates a new feed animal command
func NewFeedAnimalCommand(zookeeperID shared.ID, a animal.Animal) FeedAnimalCommand {
	return FeedAnimalCommand{
		BaseCommand: NewBaseCommand(TypeFeedAnimal, zookeeperID.String()),
		ZookeeperID: zookeeperID,
		Animal:      a,
	}
}

// MoveAnimalCommand has a zookeeper move an animal into another enclosure
type MoveAnimalCommand struct {
	BaseCommand
	ZookeeperID       shared.ID     `json:"zookeeper_id"`
	TargetEnclosureID shared.ID     `json:"target_enclosure_id"`
	Animal            animal.Animal `json:"-"`
}

// NewMoveAnimalCommand creates a new move animal command
func NewMoveAnimalCommand(zookeeperID shared.ID, a animal.Animal, target shared.ID) MoveAnimalCommand {
	return MoveAnimalCommand{
		BaseCommand:       NewBaseCommand(TypeMoveAnimal, zookeeperID.String()),
		ZookeeperID:       zookeeperID,
		TargetEnclosureID: target,
		Animal:            a,
	}
}
