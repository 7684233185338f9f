package handlers

import (
	"fmt"
	"strings"

	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/shared"
)

// AnimalSpec describes an animal to admit. Only the traits of the chosen
// species are read; Age and Health default to a newborn.
type AnimalSpec struct {
	Species animal.Species `json:"species" example:"lion"`
	Name    string         `json:"name" example:"lion6"`
	Age     string         `json:"age,omitempty" example:"4"`
	Health  *int           `json:"health,omitempty" example:"80"`

	HasFur        bool             `json:"has_fur,omitempty"`
	CanFly        bool             `json:"can_fly,omitempty"`
	WaterType     animal.WaterType `json:"water_type,omitempty" example:"salt"`
	SkinType      animal.SkinType  `json:"skin_type,omitempty" example:"dark"`
	Venomous      bool             `json:"venomous,omitempty"`
	ManeSize      int              `json:"mane_size,omitempty"`
	NeckSize      int              `json:"neck_size,omitempty"`
	SwimmingSpeed int              `json:"swimming_speed,omitempty"`
	HomingAbility int              `json:"homing_ability,omitempty"`
	GlideDistance int              `json:"glide_distance,omitempty"`
}

// Build validates the spec and creates the animal
func (s AnimalSpec) Build() (animal.Animal, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return nil, shared.ErrInvalidInputf("animal name is required")
	}
	if !s.Species.IsValid() {
		return nil, shared.ErrInvalidInputf("unknown species %q", s.Species)
	}

	age := animal.Age(s.Age)
	if s.Age == "" {
		age = animal.Newborn
	}
	health := animal.BirthHealth
	if s.Health != nil {
		health = *s.Health
	}
	if health < 0 || health > animal.MaxHealth {
		return nil, shared.ErrInvalidInputf("health must be between 0 and %d, got %d", animal.MaxHealth, health)
	}

	switch s.Species {
	case animal.SpeciesLion:
		return animal.NewLion(name, age, health, s.HasFur, s.ManeSize), nil
	case animal.SpeciesGiraffe:
		return animal.NewGiraffe(name, age, health, s.HasFur, s.NeckSize), nil
	case animal.SpeciesPenguin:
		return animal.NewPenguin(name, age, health, s.CanFly, s.SwimmingSpeed), nil
	case animal.SpeciesPigeon:
		return animal.NewPigeon(name, age, health, s.CanFly, s.HomingAbility), nil
	case animal.SpeciesSnake:
		if s.SkinType != animal.DarkSkin && s.SkinType != animal.LightSkin {
			return nil, shared.ErrInvalidInputf("unknown skin type %q", s.SkinType)
		}
		return animal.NewSnake(name, age, health, s.SkinType, s.Venomous), nil
	case animal.SpeciesFlyingFish:
		switch s.WaterType {
		case animal.SaltWater, animal.FreshWater, animal.BrackishWater:
		default:
			return nil, shared.ErrInvalidInputf("unknown water type %q", s.WaterType)
		}
		return animal.NewFlyingFish(name, age, health, s.WaterType, s.CanFly, s.GlideDistance), nil
	}

	return nil, fmt.Errorf("species %s has no constructor", s.Species)
}
