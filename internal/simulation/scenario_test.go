package simulation

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/zoo/internal/app/handler"
	"github.com/danghamo/zoo/internal/cqrs/handlers"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/enclosure"
	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/internal/domain/staff"
	"github.com/danghamo/zoo/internal/eventbus"
	"github.com/danghamo/zoo/pkg/config"
	"github.com/danghamo/zoo/pkg/logger"
)

func freshSequences() handler.Option {
	return handler.WithSequences(shared.NewSequence(enclosure.IDPrefix), shared.NewSequence(staff.IDPrefix))
}

func TestRun_Transcript(t *testing.T) {
	var out bytes.Buffer
	res, err := Run(context.Background(), DefaultConfig(), nil, logger.NewNop(), &out, freshSequences())
	require.NoError(t, err)

	want := "lion1 90\nlion2 40\nlion3 50\nlion4 60\nlion5 70\n" +
		"lion1 100\nlion2 50\nlion3 60\nlion4 70\nlion5 80\n" +
		"E1 Animals:\nlion1\nlion2\nlion3\nlion4\nlion5\n" +
		"E0 Animals:\nNo Animals In the Enclosure\n" +
		"E1 Animals:\nlion2\nlion3\nlion4\nlion5\n" +
		"E0 Animals:\nlion1\n" +
		"\n" +
		"Hadiqat El-Hayawan Zoo\n" +
		"=======================\n" +
		"Name       : Hadiqat El-Hayawan\n" +
		"Location   : Gize, Egypt\n" +
		"\n" +
		"Enclosures : 7\n" +
		"  -> IDs   : E0, E1, E2, E3, E4, E5, E6\n" +
		"\n" +
		"Employees  : 2\n" +
		"  - Omar Zaid (Veterinarian)\n" +
		"  - Mostafa Raef (Zookeeper)\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, res.Report, res.Service.Zoo().Render())
}

func TestRun_Result(t *testing.T) {
	var out bytes.Buffer
	res, err := Run(context.Background(), DefaultConfig(), nil, nil, &out, freshSequences())
	require.NoError(t, err)

	require.Len(t, res.Enclosures, 7)
	assert.Equal(t, shared.ID("E0"), res.Enclosures[Mammals].ID())
	assert.Equal(t, shared.ID("E1"), res.Enclosures[Lions].ID())
	assert.Equal(t, shared.ID("E6"), res.Enclosures[Snakes].ID())

	for _, name := range []string{Giraffes, FlyingFish, Penguins, Pigeons, Snakes} {
		assert.Equal(t, 5, res.Enclosures[name].Size(), name)
	}
	assert.Equal(t, 4, res.Enclosures[Lions].Size())
	assert.Equal(t, 1, res.Enclosures[Mammals].Size())
	assert.Equal(t, shared.ID("E0"), animal.EnclosureID(res.Lions[0]))

	require.Len(t, res.Treatments, 5)
	for _, tr := range res.Treatments {
		assert.Equal(t, staff.Treated, tr.Outcome)
		assert.Equal(t, tr.Before+staff.TreatmentStep, tr.After)
	}

	require.Len(t, res.Meals, 5)
	for _, m := range res.Meals {
		assert.Equal(t, "meat", m.Food)
		assert.Equal(t, animal.SpeciesLion, m.Species)
	}

	assert.Equal(t, shared.ID("EMP0"), res.Veterinarian.ID())
	assert.Equal(t, shared.ID("EMP1"), res.Zookeeper.ID())
	assert.True(t, res.Veterinarian.Licensed())
	assert.Equal(t, "Morning", res.Zookeeper.Shift())
}

func TestRun_EnforcedCapacityFailsOnFullEnclosure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 3
	cfg.Policy = enclosure.Enforced

	_, err := Run(context.Background(), cfg, nil, nil, &bytes.Buffer{}, freshSequences())
	require.Error(t, err)
	assert.ErrorIs(t, err, enclosure.ErrCapacityExceeded)
	assert.Contains(t, err.Error(), "lion4")
}

func TestConfigFrom(t *testing.T) {
	cfg := &config.Config{
		Zoo:       config.ZooConfig{Name: "Z", Location: "L"},
		Enclosure: config.EnclosureConfig{CapacityPolicy: "enforced", DefaultCapacity: 8},
	}
	got, err := ConfigFrom(cfg)
	require.NoError(t, err)
	assert.Equal(t, Config{ZooName: "Z", Location: "L", Capacity: 8, Policy: enclosure.Enforced}, got)

	cfg.Enclosure.CapacityPolicy = "strict"
	_, err = ConfigFrom(cfg)
	assert.Error(t, err)
}

func TestRun_OverMemoryBus(t *testing.T) {
	bus, err := eventbus.New(config.EventsConfig{Backend: config.BackendMemory, TopicPrefix: "zoo-events"}, nil, logger.NewNop())
	require.NoError(t, err)

	audit := handlers.NewAuditEventHandler(logger.NewNop())
	require.NoError(t, bus.AddHandlers(audit.EventHandlers()...))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = bus.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, bus.Close())
		<-done
	})

	waitCtx, waitCancel := context.WithTimeout(ctx, 10*time.Second)
	defer waitCancel()
	require.NoError(t, bus.WaitReady(waitCtx))

	_, err = Run(ctx, DefaultConfig(), bus, logger.NewNop(), &bytes.Buffer{}, freshSequences())
	require.NoError(t, err)

	// 7 enclosures, 30 admissions, 2 hires, 5 treatments, 5 meals, 1 move
	assert.Eventually(t, func() bool { return audit.Len() == 50 }, 10*time.Second, 20*time.Millisecond)

	var moved bool
	for _, e := range audit.Entries() {
		if strings.Contains(e.Message, "lion1 moved from E1 to E0") {
			moved = true
		}
	}
	assert.True(t, moved)
}
