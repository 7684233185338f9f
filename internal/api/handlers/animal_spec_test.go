package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/shared"
)

func intPtr(v int) *int { return &v }

func TestAnimalSpec_Build(t *testing.T) {
	a, err := AnimalSpec{Species: animal.SpeciesLion, Name: " lion6 ", HasFur: true, ManeSize: 4}.Build()
	require.NoError(t, err)
	lion, ok := a.(*animal.Lion)
	require.True(t, ok)
	assert.Equal(t, "lion6", lion.Name())
	assert.Equal(t, animal.Newborn, lion.Age())
	assert.Equal(t, animal.BirthHealth, lion.Health())

	a, err = AnimalSpec{Species: animal.SpeciesSnake, Name: "snake1", Age: "2", Health: intPtr(0), SkinType: animal.DarkSkin, Venomous: true}.Build()
	require.NoError(t, err)
	snake, ok := a.(*animal.Snake)
	require.True(t, ok)
	assert.True(t, snake.Venomous())
	assert.Equal(t, 0, snake.Health())

	a, err = AnimalSpec{Species: animal.SpeciesFlyingFish, Name: "fish1", WaterType: animal.BrackishWater, CanFly: true}.Build()
	require.NoError(t, err)
	assert.Equal(t, animal.SpeciesFlyingFish, a.Species())

	for _, s := range []AnimalSpec{
		{Species: animal.SpeciesGiraffe},
		{Species: "unicorn", Name: "u1"},
		{Species: animal.SpeciesPigeon, Name: "p1", Health: intPtr(101)},
		{Species: animal.SpeciesPenguin, Name: "p2", Health: intPtr(-1)},
		{Species: animal.SpeciesSnake, Name: "s1", SkinType: "scaly"},
		{Species: animal.SpeciesFlyingFish, Name: "f1"},
	} {
		_, err := s.Build()
		assert.True(t, errors.Is(err, shared.ErrInvalidInput), "%+v: %v", s, err)
	}
}
