package animal

// Class is a taxonomic capability group
type Class string

const (
	ClassMammal  Class = "mammal"
	ClassBird    Class = "bird"
	ClassFish    Class = "fish"
	ClassReptile Class = "reptile"
)

// String returns string representation
func (c Class) String() string {
	return string(c)
}

// WaterType is the kind of water a fish lives in
type WaterType string

const (
	SaltWater     WaterType = "salt"
	FreshWater    WaterType = "fresh"
	BrackishWater WaterType = "brackish"
)

// SkinType describes a reptile's skin
type SkinType string

const (
	DarkSkin  SkinType = "dark"
	LightSkin SkinType = "light"
)

// Mammal is an animal that may have fur
type Mammal interface {
	Animal
	HasFur() bool
}

// Bird is an animal that may be able to fly
type Bird interface {
	Animal
	CanFly() bool
}

// Fish is an animal living in a particular water type
type Fish interface {
	Animal
	WaterType() WaterType
}

// Reptile is an animal with a skin type
type Reptile interface {
	Animal
	SkinType() SkinType
}

// MammalTraits carries the mammal capability payload
type MammalTraits struct {
	hasFur bool
}

// HasFur reports fur presence
func (t MammalTraits) HasFur() bool {
	return t.hasFur
}

// BirdTraits carries the bird capability payload
type BirdTraits struct {
	canFly bool
}

// CanFly reports flight capability
func (t BirdTraits) CanFly() bool {
	return t.canFly
}

// FishTraits carries the fish capability payload
type FishTraits struct {
	waterType WaterType
}

// WaterType returns the water type
func (t FishTraits) WaterType() WaterType {
	return t.waterType
}

// ReptileTraits carries the reptile capability payload
type ReptileTraits struct {
	skinType SkinType
}

// SkinType returns the skin type
func (t ReptileTraits) SkinType() SkinType {
	return t.skinType
}

// ClassesOf lists every capability group a satisfies, in a fixed order
func ClassesOf(a Animal) []Class {
	classes := make([]Class, 0, 2)
	if _, ok := a.(Mammal); ok {
		classes = append(classes, ClassMammal)
	}
	if _, ok := a.(Bird); ok {
		classes = append(classes, ClassBird)
	}
	if _, ok := a.(Fish); ok {
		classes = append(classes, ClassFish)
	}
	if _, ok := a.(Reptile); ok {
		classes = append(classes, ClassReptile)
	}
	return classes
}

// Is reports whether a belongs to the capability group c
func Is(a Animal, c Class) bool {
	for _, got := range ClassesOf(a) {
		if got == c {
			return true
		}
	}
	return false
}
