package animal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/zoo/internal/domain/shared"
)

type stubHolder struct {
	id shared.ID
}

func (s *stubHolder) ID() shared.ID               { return s.id }
func (s *stubHolder) AddAnimal(a Animal) error    { a.AssignEnclosure(s); return nil }
func (s *stubHolder) RemoveAnimal(a Animal) error { a.ReleaseEnclosure(s); return nil }

func TestFromBirth(t *testing.T) {
	tests := []struct {
		name    string
		animal  Animal
		species Species
	}{
		{"lion", LionFromBirth("L1", true, 12), SpeciesLion},
		{"giraffe", GiraffeFromBirth("G1", true, 100), SpeciesGiraffe},
		{"penguin", PenguinFromBirth("P1", false, 10), SpeciesPenguin},
		{"pigeon", PigeonFromBirth("PG1", true, 5), SpeciesPigeon},
		{"snake", SnakeFromBirth("S1", DarkSkin, true), SpeciesSnake},
		{"flying fish", FlyingFishFromBirth("F1", SaltWater, true, 10), SpeciesFlyingFish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Newborn, tt.animal.Age())
			assert.Equal(t, 100, tt.animal.Health())
			assert.Equal(t, tt.species, tt.animal.Species())

			_, placed := tt.animal.Enclosure()
			assert.False(t, placed)
		})
	}
}

func TestLionFromBirth_KeepsSpeciesAttributes(t *testing.T) {
	lion := LionFromBirth("L1", true, 12)

	assert.Equal(t, "L1", lion.Name())
	assert.True(t, lion.HasFur())
	assert.Equal(t, 12, lion.ManeSize())
}

func TestSetHealth_HasNoBounds(t *testing.T) {
	snake := NewSnake("snake1", Years(14), 56, DarkSkin, true)

	snake.SetHealth(150)
	assert.Equal(t, 150, snake.Health())

	snake.SetHealth(-5)
	assert.Equal(t, -5, snake.Health())
}

func TestAge(t *testing.T) {
	t.Run("numeric text", func(t *testing.T) {
		n, ok := Age("12").Years()
		require.True(t, ok)
		assert.Equal(t, 12, n)
	})

	t.Run("free text is kept", func(t *testing.T) {
		age := Age("about three")
		_, ok := age.Years()
		assert.False(t, ok)
		assert.Equal(t, "about three", NewGiraffe("g", age, 90, true, 100).Age().String())
	})

	t.Run("years helper", func(t *testing.T) {
		assert.Equal(t, Age("40"), Years(40))
	})
}

func TestEnclosureBackReference(t *testing.T) {
	lion := NewLion("lion1", Years(12), 90, true, 12)
	e0 := &stubHolder{id: "E0"}
	e1 := &stubHolder{id: "E1"}

	assert.Equal(t, shared.ID(""), EnclosureID(lion))

	lion.AssignEnclosure(e0)
	got, ok := lion.Enclosure()
	require.True(t, ok)
	assert.Same(t, e0, got)
	assert.Equal(t, shared.ID("E0"), EnclosureID(lion))

	t.Run("release from another holder is ignored", func(t *testing.T) {
		lion.ReleaseEnclosure(e1)
		got, ok := lion.Enclosure()
		require.True(t, ok)
		assert.Same(t, e0, got)
	})

	t.Run("release from current holder clears it", func(t *testing.T) {
		lion.ReleaseEnclosure(e0)
		_, ok := lion.Enclosure()
		assert.False(t, ok)
	})
}

func TestMakeSoundAndFeed_DoNotChangeState(t *testing.T) {
	animals := []Animal{
		NewLion("lion1", Years(12), 90, true, 12),
		NewGiraffe("giraffe1", Years(12), 100, true, 100),
		NewPenguin("penguin1", Years(6), 100, false, 10),
		NewPigeon("pigeon1", Years(2), 96, true, 10),
		NewSnake("snake1", Years(14), 56, DarkSkin, true),
		NewFlyingFish("FlyingFish1", Years(12), 100, SaltWater, true, 10),
	}

	sounds := make(map[Sound]Species)
	for _, a := range animals {
		before := Snap(a)

		sound := a.MakeSound()
		meal := a.Feed()

		assert.Equal(t, before, Snap(a), "%s changed state", a.Name())
		assert.Equal(t, a.Name(), meal.Animal)
		assert.Equal(t, a.Species(), meal.Species)
		assert.NotEmpty(t, meal.Food)

		_, dup := sounds[sound]
		assert.False(t, dup, "sound %q is not unique", sound)
		sounds[sound] = a.Species()
	}
}

func TestIsHealthy(t *testing.T) {
	assert.True(t, IsHealthy(LionFromBirth("L1", true, 12)))
	assert.False(t, IsHealthy(NewLion("L2", Years(3), 99, true, 12)))
}

func TestSpecies(t *testing.T) {
	assert.True(t, SpeciesFlyingFish.IsValid())
	assert.False(t, Species("dragon").IsValid())
	assert.Equal(t, "Flying Fish", SpeciesFlyingFish.DisplayName())
	assert.Equal(t, "Lion", SpeciesLion.DisplayName())
	assert.Equal(t, "dragon", Species("dragon").DisplayName())
}
