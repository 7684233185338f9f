package animal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlyingFish_SatisfiesFishAndBird(t *testing.T) {
	var a Animal = FlyingFishFromBirth("F1", SaltWater, true, 10)

	fish, isFish := a.(Fish)
	require.True(t, isFish)
	bird, isBird := a.(Bird)
	require.True(t, isBird)

	assert.Equal(t, SaltWater, fish.WaterType())
	assert.True(t, bird.CanFly())

	// one entity behind both views
	fish.SetHealth(70)
	assert.Equal(t, 70, bird.Health())
	assert.Same(t, a, Animal(fish))

	_, isMammal := a.(Mammal)
	assert.False(t, isMammal)
	_, isReptile := a.(Reptile)
	assert.False(t, isReptile)
}

func TestClassesOf(t *testing.T) {
	tests := []struct {
		name   string
		animal Animal
		want   []Class
	}{
		{"lion", LionFromBirth("L", true, 1), []Class{ClassMammal}},
		{"giraffe", GiraffeFromBirth("G", true, 1), []Class{ClassMammal}},
		{"penguin", PenguinFromBirth("P", false, 1), []Class{ClassBird}},
		{"pigeon", PigeonFromBirth("PG", true, 1), []Class{ClassBird}},
		{"snake", SnakeFromBirth("S", LightSkin, false), []Class{ClassReptile}},
		{"flying fish", FlyingFishFromBirth("F", SaltWater, true, 1), []Class{ClassBird, ClassFish}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassesOf(tt.animal))
			for _, c := range tt.want {
				assert.True(t, Is(tt.animal, c))
			}
		})
	}
}

func TestSnap(t *testing.T) {
	ff := NewFlyingFish("FlyingFish2", Years(14), 80, SaltWater, true, 12)
	ff.AssignEnclosure(&stubHolder{id: "E3"})

	snap := Snap(ff)
	assert.Equal(t, "FlyingFish2", snap.Name)
	assert.Equal(t, SpeciesFlyingFish, snap.Species)
	assert.Equal(t, Age("14"), snap.Age)
	assert.Equal(t, 80, snap.Health)
	assert.Equal(t, "E3", snap.EnclosureID)
	assert.Equal(t, map[string]any{
		"can_fly":        true,
		"water_type":     "salt",
		"glide_distance": 12,
	}, snap.Traits)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"classes":["bird","fish"]`)
}

func TestSnap_OmitsMissingEnclosure(t *testing.T) {
	raw, err := json.Marshal(Snap(SnakeFromBirth("S1", DarkSkin, true)))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "enclosure_id")
	assert.Contains(t, string(raw), `"venomous":true`)
	assert.Contains(t, string(raw), `"skin_type":"dark"`)
}
