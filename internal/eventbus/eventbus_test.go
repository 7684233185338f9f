package eventbus

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zooevents "github.com/danghamo/zoo/internal/cqrs"
	"github.com/danghamo/zoo/internal/cqrs/handlers"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/pkg/config"
	"github.com/danghamo/zoo/pkg/logger"
	"github.com/danghamo/zoo/pkg/redisx"
)

func memoryConfig() config.EventsConfig {
	return config.EventsConfig{Backend: config.BackendMemory, TopicPrefix: "zoo-events"}
}

// startBus runs b in the background and waits until handlers are subscribed
func startBus(t *testing.T, b *Bus) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = b.Run(ctx)
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer waitCancel()
	require.NoError(t, b.WaitReady(waitCtx))

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, b.Close())
		<-done
	})
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "zoo-events.AnimalFedEvent", Topic("zoo-events", zooevents.AnimalFedEventName))
}

func TestConsumerGroup(t *testing.T) {
	assert.Equal(t, "zoo-audit.audit.AnimalFedEvent", ConsumerGroup("zoo-audit", "audit.AnimalFedEvent"))
	assert.Equal(t, "stream.AnimalFedEvent", ConsumerGroup("", "stream.AnimalFedEvent"))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(config.EventsConfig{Backend: config.BackendMemory}, nil, logger.NewNop())
	assert.Error(t, err, "empty prefix")

	_, err = New(config.EventsConfig{Backend: "kafka", TopicPrefix: "p"}, nil, logger.NewNop())
	assert.Error(t, err, "unknown backend")

	_, err = New(config.EventsConfig{Backend: config.BackendRedis, TopicPrefix: "p"}, nil, logger.NewNop())
	assert.Error(t, err, "redis without client")
}

func TestMemoryBus_DeliversToAuditHandler(t *testing.T) {
	b, err := New(memoryConfig(), nil, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, b.Backend())

	audit := handlers.NewAuditEventHandler(logger.NewNop())
	require.NoError(t, b.AddHandlers(audit.EventHandlers()...))

	startBus(t, b)

	ctx := context.Background()
	require.NoError(t, b.Publish(ctx, &zooevents.AnimalFedEvent{
		Animal: "lion1", Species: animal.SpeciesLion, Sound: animal.SoundRoar, Food: "meat",
		Timestamp: time.Now(), RequestID: uuid.New().String(),
	}))
	require.NoError(t, b.Publish(ctx, &zooevents.AnimalMovedEvent{
		Animal: "lion1", FromEnclosureID: "E1", ToEnclosureID: "E0",
		Timestamp: time.Now(), RequestID: uuid.New().String(),
	}))

	assert.Eventually(t, func() bool { return audit.Len() == 2 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(2), b.Published())

	messages := map[string]bool{}
	for _, e := range audit.Entries() {
		messages[e.Message] = true
	}
	assert.True(t, messages["Feeding Lion lion1 meat (roar)"])
	assert.True(t, messages["lion1 moved from E1 to E0"])
}

func TestMemoryBus_CloseTwice(t *testing.T) {
	b, err := New(memoryConfig(), nil, logger.NewNop())
	require.NoError(t, err)

	assert.NoError(t, b.Close())
	assert.NoError(t, b.Close())
}

func TestRedisBus(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping redis stream test")
	}

	client, err := redisx.NewClient(url, logger.NewNop())
	require.NoError(t, err)
	defer client.Close()

	cfg := config.EventsConfig{
		Backend:       config.BackendRedis,
		TopicPrefix:   fmt.Sprintf("zoo-test-%s", uuid.New().String()[:8]),
		ConsumerGroup: "zoo-test",
	}
	b, err := New(cfg, client, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, config.BackendRedis, b.Backend())

	audit := handlers.NewAuditEventHandler(logger.NewNop())
	require.NoError(t, b.AddHandlers(audit.EventHandlers()...))
	startBus(t, b)

	require.NoError(t, b.Publish(context.Background(), &zooevents.EnclosureRegisteredEvent{
		Zoo: "Hadiqat El-Hayawan", EnclosureID: "E0", Capacity: 50,
		Timestamp: time.Now(), RequestID: uuid.New().String(),
	}))

	assert.Eventually(t, func() bool { return audit.Len() == 1 }, 10*time.Second, 50*time.Millisecond)

	topic := Topic(cfg.TopicPrefix, zooevents.EnclosureRegisteredEventName)
	n, err := client.StreamLength(context.Background(), topic)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	client.Del(context.Background(), topic)
}
