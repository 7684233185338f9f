package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/enclosure"
	"github.com/danghamo/zoo/internal/domain/shared"
)

type fakeZoo struct {
	name       string
	employees  []Member
	enclosures []*enclosure.Enclosure
}

func (z *fakeZoo) Name() string                        { return z.name }
func (z *fakeZoo) AddEmployee(m Member)                { z.employees = append(z.employees, m) }
func (z *fakeZoo) AddEnclosure(e *enclosure.Enclosure) { z.enclosures = append(z.enclosures, e) }

type fixture struct {
	zoo        *fakeZoo
	staffIDs   *shared.Sequence
	enclosures *shared.Sequence
}

func newFixture() *fixture {
	return &fixture{
		zoo:        &fakeZoo{name: "Hadiqat El-Hayawan"},
		staffIDs:   shared.NewSequence(IDPrefix),
		enclosures: shared.NewSequence(enclosure.IDPrefix),
	}
}

func (f *fixture) enclosure(t *testing.T, capacity int, opts ...enclosure.Option) *enclosure.Enclosure {
	t.Helper()
	opts = append([]enclosure.Option{enclosure.WithSequence(f.enclosures)}, opts...)
	e, err := enclosure.New(capacity, f.zoo, opts...)
	require.NoError(t, err)
	return e
}

func (f *fixture) vet(t *testing.T) *Veterinarian {
	t.Helper()
	v, err := NewVeterinarian("Omar Zaid", f.zoo, true, WithSequence(f.staffIDs))
	require.NoError(t, err)
	return v
}

func (f *fixture) keeper(t *testing.T) *Zookeeper {
	t.Helper()
	k, err := NewZookeeper("Mostafa Raef", f.zoo, "Morning", WithSequence(f.staffIDs))
	require.NoError(t, err)
	return k
}

func TestHiring_RegistersIntoZoo(t *testing.T) {
	f := newFixture()
	vet := f.vet(t)
	keeper := f.keeper(t)

	require.Len(t, f.zoo.employees, 2)
	assert.Same(t, vet, f.zoo.employees[0])
	assert.Same(t, keeper, f.zoo.employees[1])

	assert.Equal(t, shared.ID("EMP0"), vet.ID())
	assert.Equal(t, shared.ID("EMP1"), keeper.ID())
	assert.Equal(t, RoleVeterinarian, vet.Role())
	assert.Equal(t, RoleZookeeper, keeper.Role())
	assert.True(t, vet.Licensed())
	assert.Equal(t, "Morning", keeper.Shift())
	assert.Equal(t, "Hadiqat El-Hayawan", keeper.ZooName())
}

func TestHiring_WithoutZoo(t *testing.T) {
	seq := shared.NewSequence(IDPrefix)

	_, err := NewVeterinarian("Omar Zaid", nil, true, WithSequence(seq))
	assert.ErrorIs(t, err, ErrMissingZoo)

	_, err = NewZookeeper("Mostafa Raef", nil, "Morning", WithSequence(seq))
	assert.ErrorIs(t, err, ErrMissingZoo)

	assert.Equal(t, int64(0), seq.Issued())
}

func TestTreat_ClampLaw(t *testing.T) {
	for h := 0; h <= 100; h++ {
		want := h + 10
		if want > 100 {
			want = 100
		}
		assert.Equal(t, want, Treat(h), "health %d", h)
	}
}

func TestTreatAnimal(t *testing.T) {
	f := newFixture()
	vet := f.vet(t)

	tests := []struct {
		name    string
		health  int
		want    int
		outcome TreatmentOutcome
	}{
		{"already healthy", 100, 100, AlreadyHealthy},
		{"exactly reaches max", 90, 100, Treated},
		{"clamps from 95", 95, 100, Treated},
		{"clamps from 92", 92, 100, Treated},
		{"plain increase", 40, 50, Treated},
		{"over max is left alone", 120, 120, AlreadyHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lion := animal.NewLion("lion", animal.Years(5), tt.health, true, 12)

			got := vet.TreatAnimal(lion)

			assert.Equal(t, tt.outcome, got.Outcome)
			assert.Equal(t, tt.health, got.Before)
			assert.Equal(t, tt.want, got.After)
			assert.Equal(t, tt.want, lion.Health())
		})
	}
}

func TestFeedAnimal_DelegatesToAnimal(t *testing.T) {
	f := newFixture()
	keeper := f.keeper(t)
	penguin := animal.NewPenguin("penguin1", animal.Years(6), 80, false, 10)

	meal := keeper.FeedAnimal(penguin)

	assert.Equal(t, penguin.Feed(), meal)
	assert.Equal(t, 80, penguin.Health())
}

func TestMoveAnimalToEnclosure(t *testing.T) {
	f := newFixture()
	keeper := f.keeper(t)
	mammals := f.enclosure(t, 50)
	lions := f.enclosure(t, 50)

	lion := animal.NewLion("lion1", animal.Years(12), 90, true, 12)
	other := animal.NewLion("lion2", animal.Years(20), 40, true, 14)
	require.NoError(t, lions.AddAnimal(lion))
	require.NoError(t, lions.AddAnimal(other))

	require.NoError(t, keeper.MoveAnimalToEnclosure(lion, mammals))

	assert.False(t, lions.Contains(lion))
	assert.Equal(t, 1, mammals.Count(lion))
	assert.Equal(t, []string{"lion2"}, lions.AnimalNames())
	holder, ok := lion.Enclosure()
	require.True(t, ok)
	assert.Same(t, mammals, holder)
}

func TestMoveAnimalToEnclosure_Unplaced(t *testing.T) {
	f := newFixture()
	keeper := f.keeper(t)
	target := f.enclosure(t, 50)
	fish := animal.FlyingFishFromBirth("F1", animal.SaltWater, true, 10)

	require.NoError(t, keeper.MoveAnimalToEnclosure(fish, target))

	assert.Equal(t, 1, target.Count(fish))
	assert.Equal(t, shared.ID("E0"), animal.EnclosureID(fish))
}

func TestMoveAnimalToEnclosure_SameEnclosure(t *testing.T) {
	f := newFixture()
	keeper := f.keeper(t)
	e := f.enclosure(t, 1, enclosure.WithCapacityPolicy(enclosure.Enforced))
	snake := animal.SnakeFromBirth("snake1", animal.DarkSkin, true)
	require.NoError(t, e.AddAnimal(snake))

	require.NoError(t, keeper.MoveAnimalToEnclosure(snake, e))
	assert.Equal(t, 1, e.Count(snake))
}

func TestMoveAnimalToEnclosure_FullTargetLeavesAnimalInPlace(t *testing.T) {
	f := newFixture()
	keeper := f.keeper(t)
	source := f.enclosure(t, 50)
	full := f.enclosure(t, 1, enclosure.WithCapacityPolicy(enclosure.Enforced))

	require.NoError(t, full.AddAnimal(animal.PigeonFromBirth("pigeon1", true, 10)))
	pigeon := animal.PigeonFromBirth("pigeon2", true, 6)
	require.NoError(t, source.AddAnimal(pigeon))

	err := keeper.MoveAnimalToEnclosure(pigeon, full)
	require.Error(t, err)
	assert.ErrorIs(t, err, enclosure.ErrCapacityExceeded)

	assert.Equal(t, 1, source.Count(pigeon))
	assert.False(t, full.Contains(pigeon))
	assert.Equal(t, source.ID(), animal.EnclosureID(pigeon))
}

// closedPen passes the capacity check but refuses every animal
type closedPen struct{}

func (closedPen) ID() shared.ID                    { return "E99" }
func (closedPen) CanAccept() error                 { return nil }
func (closedPen) AddAnimal(animal.Animal) error    { return shared.ErrInvalidOperationf("pen closed") }
func (closedPen) RemoveAnimal(animal.Animal) error { return nil }

func TestMoveAnimalToEnclosure_FailedAddRestoresPosition(t *testing.T) {
	f := newFixture()
	keeper := f.keeper(t)
	source := f.enclosure(t, 50)

	lions := []*animal.Lion{
		animal.LionFromBirth("lion1", true, 10),
		animal.LionFromBirth("lion2", true, 12),
		animal.LionFromBirth("lion3", true, 14),
	}
	for _, l := range lions {
		require.NoError(t, source.AddAnimal(l))
	}

	err := keeper.MoveAnimalToEnclosure(lions[1], closedPen{})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidOperation)

	assert.Equal(t, []string{"lion1", "lion2", "lion3"}, source.AnimalNames())
	assert.Equal(t, source.ID(), animal.EnclosureID(lions[1]))
}

func TestMoveAnimalToEnclosure_StaleBackReference(t *testing.T) {
	f := newFixture()
	keeper := f.keeper(t)
	source := f.enclosure(t, 50)
	target := f.enclosure(t, 50)
	giraffe := animal.GiraffeFromBirth("giraffe1", true, 100)
	giraffe.AssignEnclosure(source)

	err := keeper.MoveAnimalToEnclosure(giraffe, target)
	require.Error(t, err)
	assert.ErrorIs(t, err, enclosure.ErrAnimalNotInEnclosure)
	assert.False(t, target.Contains(giraffe))
}

func TestMoveAnimalToEnclosure_NilTarget(t *testing.T) {
	f := newFixture()
	keeper := f.keeper(t)

	err := keeper.MoveAnimalToEnclosure(animal.LionFromBirth("L1", true, 12), nil)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
