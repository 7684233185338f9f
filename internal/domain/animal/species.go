package animal

// Species identifies a concrete kind of animal
type Species string

const (
	SpeciesLion       Species = "lion"
	SpeciesGiraffe    Species = "giraffe"
	SpeciesPenguin    Species = "penguin"
	SpeciesPigeon     Species = "pigeon"
	SpeciesSnake      Species = "snake"
	SpeciesFlyingFish Species = "flying_fish"
)

// String returns string representation
func (s Species) String() string {
	return string(s)
}

// IsValid checks if species is known
func (s Species) IsValid() bool {
	switch s {
	case SpeciesLion, SpeciesGiraffe, SpeciesPenguin, SpeciesPigeon, SpeciesSnake, SpeciesFlyingFish:
		return true
	default:
		return false
	}
}

// DisplayName returns the human-readable species name
func (s Species) DisplayName() string {
	switch s {
	case SpeciesLion:
		return "Lion"
	case SpeciesGiraffe:
		return "Giraffe"
	case SpeciesPenguin:
		return "Penguin"
	case SpeciesPigeon:
		return "Pigeon"
	case SpeciesSnake:
		return "Snake"
	case SpeciesFlyingFish:
		return "Flying Fish"
	default:
		return string(s)
	}
}

// Sound is a stable identifier for the noise a species makes
type Sound string

const (
	SoundRoar   Sound = "roar"
	SoundHum    Sound = "hum"
	SoundBray   Sound = "bray"
	SoundCoo    Sound = "coo"
	SoundHiss   Sound = "hiss"
	SoundSplash Sound = "splash"
)

// String returns string representation
func (s Sound) String() string {
	return string(s)
}

// Meal describes one feeding. Feeding does not change the animal.
type Meal struct {
	Animal  string  `json:"animal"`
	Species Species `json:"species"`
	Food    string  `json:"food"`
}

func mealFor(a Animal, food string) Meal {
	return Meal{Animal: a.Name(), Species: a.Species(), Food: food}
}

// Lion is a mammal with a mane
type Lion struct {
	Base
	MammalTraits
	maneSize int
}

// NewLion creates a lion
func NewLion(name string, age Age, health int, hasFur bool, maneSize int) *Lion {
	return &Lion{
		Base:         newBase(name, age, health),
		MammalTraits: MammalTraits{hasFur: hasFur},
		maneSize:     maneSize,
	}
}

// LionFromBirth creates a newborn lion
func LionFromBirth(name string, hasFur bool, maneSize int) *Lion {
	return NewLion(name, Newborn, BirthHealth, hasFur, maneSize)
}

// Species returns SpeciesLion
func (l *Lion) Species() Species {
	return SpeciesLion
}

// MakeSound returns the lion sound
func (l *Lion) MakeSound() Sound {
	return SoundRoar
}

// Feed feeds the lion without changing it
func (l *Lion) Feed() Meal {
	return mealFor(l, "meat")
}

// ManeSize returns the mane size
func (l *Lion) ManeSize() int {
	return l.maneSize
}

// Giraffe is a mammal with a long neck
type Giraffe struct {
	Base
	MammalTraits
	neckSize int
}

// NewGiraffe creates a giraffe
func NewGiraffe(name string, age Age, health int, hasFur bool, neckSize int) *Giraffe {
	return &Giraffe{
		Base:         newBase(name, age, health),
		MammalTraits: MammalTraits{hasFur: hasFur},
		neckSize:     neckSize,
	}
}

// GiraffeFromBirth creates a newborn giraffe
func GiraffeFromBirth(name string, hasFur bool, neckSize int) *Giraffe {
	return NewGiraffe(name, Newborn, BirthHealth, hasFur, neckSize)
}

// Species returns SpeciesGiraffe
func (g *Giraffe) Species() Species {
	return SpeciesGiraffe
}

// MakeSound returns the giraffe sound
func (g *Giraffe) MakeSound() Sound {
	return SoundHum
}

// Feed feeds the giraffe without changing it
func (g *Giraffe) Feed() Meal {
	return mealFor(g, "acacia leaves")
}

// NeckSize returns the neck size
func (g *Giraffe) NeckSize() int {
	return g.neckSize
}

// Penguin is a bird that swims
type Penguin struct {
	Base
	BirdTraits
	swimmingSpeed int
}

// NewPenguin creates a penguin
func NewPenguin(name string, age Age, health int, canFly bool, swimmingSpeed int) *Penguin {
	return &Penguin{
		Base:          newBase(name, age, health),
		BirdTraits:    BirdTraits{canFly: canFly},
		swimmingSpeed: swimmingSpeed,
	}
}

// PenguinFromBirth creates a newborn penguin
func PenguinFromBirth(name string, canFly bool, swimmingSpeed int) *Penguin {
	return NewPenguin(name, Newborn, BirthHealth, canFly, swimmingSpeed)
}

// Species returns SpeciesPenguin
func (p *Penguin) Species() Species {
	return SpeciesPenguin
}

// MakeSound returns the penguin sound
func (p *Penguin) MakeSound() Sound {
	return SoundBray
}

// Feed feeds the penguin without changing it
func (p *Penguin) Feed() Meal {
	return mealFor(p, "fish")
}

// SwimmingSpeed returns the swimming speed
func (p *Penguin) SwimmingSpeed() int {
	return p.swimmingSpeed
}

// Pigeon is a bird that finds its way home
type Pigeon struct {
	Base
	BirdTraits
	homingAbility int
}

// NewPigeon creates a pigeon
func NewPigeon(name string, age Age, health int, canFly bool, homingAbility int) *Pigeon {
	return &Pigeon{
		Base:          newBase(name, age, health),
		BirdTraits:    BirdTraits{canFly: canFly},
		homingAbility: homingAbility,
	}
}

// PigeonFromBirth creates a newborn pigeon
func PigeonFromBirth(name string, canFly bool, homingAbility int) *Pigeon {
	return NewPigeon(name, Newborn, BirthHealth, canFly, homingAbility)
}

// Species returns SpeciesPigeon
func (p *Pigeon) Species() Species {
	return SpeciesPigeon
}

// MakeSound returns the pigeon sound
func (p *Pigeon) MakeSound() Sound {
	return SoundCoo
}

// Feed feeds the pigeon without changing it
func (p *Pigeon) Feed() Meal {
	return mealFor(p, "seeds")
}

// HomingAbility returns the homing ability
func (p *Pigeon) HomingAbility() int {
	return p.homingAbility
}

// Snake is a reptile that may be venomous
type Snake struct {
	Base
	ReptileTraits
	venomous bool
}

// NewSnake creates a snake
func NewSnake(name string, age Age, health int, skinType SkinType, venomous bool) *Snake {
	return &Snake{
		Base:          newBase(name, age, health),
		ReptileTraits: ReptileTraits{skinType: skinType},
		venomous:      venomous,
	}
}

// SnakeFromBirth creates a newborn snake
func SnakeFromBirth(name string, skinType SkinType, venomous bool) *Snake {
	return NewSnake(name, Newborn, BirthHealth, skinType, venomous)
}

// Species returns SpeciesSnake
func (s *Snake) Species() Species {
	return SpeciesSnake
}

// MakeSound returns the snake sound
func (s *Snake) MakeSound() Sound {
	return SoundHiss
}

// Feed feeds the snake without changing it
func (s *Snake) Feed() Meal {
	return mealFor(s, "rodents")
}

// Venomous reports venom status
func (s *Snake) Venomous() bool {
	return s.venomous
}

// FlyingFish is both a fish and a bird
type FlyingFish struct {
	Base
	FishTraits
	BirdTraits
	glideDistance int
}

// NewFlyingFish creates a flying fish
func NewFlyingFish(name string, age Age, health int, waterType WaterType, canFly bool, glideDistance int) *FlyingFish {
	return &FlyingFish{
		Base:          newBase(name, age, health),
		FishTraits:    FishTraits{waterType: waterType},
		BirdTraits:    BirdTraits{canFly: canFly},
		glideDistance: glideDistance,
	}
}

// FlyingFishFromBirth creates a newborn flying fish
func FlyingFishFromBirth(name string, waterType WaterType, canFly bool, glideDistance int) *FlyingFish {
	return NewFlyingFish(name, Newborn, BirthHealth, waterType, canFly, glideDistance)
}

// Species returns SpeciesFlyingFish
func (f *FlyingFish) Species() Species {
	return SpeciesFlyingFish
}

// MakeSound returns the flying fish sound
func (f *FlyingFish) MakeSound() Sound {
	return SoundSplash
}

// Feed feeds the flying fish without changing it
func (f *FlyingFish) Feed() Meal {
	return mealFor(f, "plankton")
}

// GlideDistance returns the glide distance
func (f *FlyingFish) GlideDistance() int {
	return f.glideDistance
}

// Compile-time capability checks
var (
	_ Mammal  = (*Lion)(nil)
	_ Mammal  = (*Giraffe)(nil)
	_ Bird    = (*Penguin)(nil)
	_ Bird    = (*Pigeon)(nil)
	_ Reptile = (*Snake)(nil)
	_ Fish    = (*FlyingFish)(nil)
	_ Bird    = (*FlyingFish)(nil)
)
