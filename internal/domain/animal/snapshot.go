package animal

// Snapshot is a read-only, serialisable view of an animal
type Snapshot struct {
	Name        string         `json:"name"`
	Species     Species        `json:"species"`
	Classes     []Class        `json:"classes"`
	Age         Age            `json:"age"`
	Health      int            `json:"health"`
	EnclosureID string         `json:"enclosure_id,omitempty"`
	Traits      map[string]any `json:"traits"`
}

// Snap captures the current state of a
func Snap(a Animal) Snapshot {
	return Snapshot{
		Name:        a.Name(),
		Species:     a.Species(),
		Classes:     ClassesOf(a),
		Age:         a.Age(),
		Health:      a.Health(),
		EnclosureID: EnclosureID(a).String(),
		Traits:      traitsOf(a),
	}
}

func traitsOf(a Animal) map[string]any {
	traits := make(map[string]any)
	if m, ok := a.(Mammal); ok {
		traits["has_fur"] = m.HasFur()
	}
	if b, ok := a.(Bird); ok {
		traits["can_fly"] = b.CanFly()
	}
	if f, ok := a.(Fish); ok {
		traits["water_type"] = string(f.WaterType())
	}
	if r, ok := a.(Reptile); ok {
		traits["skin_type"] = string(r.SkinType())
	}

	switch v := a.(type) {
	case *Lion:
		traits["mane_size"] = v.ManeSize()
	case *Giraffe:
		traits["neck_size"] = v.NeckSize()
	case *Penguin:
		traits["swimming_speed"] = v.SwimmingSpeed()
	case *Pigeon:
		traits["homing_ability"] = v.HomingAbility()
	case *Snake:
		traits["venomous"] = v.Venomous()
	case *FlyingFish:
		traits["glide_distance"] = v.GlideDistance()
	}
	return traits
}
