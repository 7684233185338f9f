package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	zooevents "github.com/danghamo/zoo/internal/cqrs"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/enclosure"
	"github.com/danghamo/zoo/pkg/logger"
)

// memoryCache stores JSON like the redis client does
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) SetJSON(_ context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) GetJSON(_ context.Context, key string, v any) (bool, error) {
	c.mu.Lock()
	b, ok := c.data[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, v)
}

func stockedService(t *testing.T) *ZooService {
	t.Helper()
	svc, _ := newService(t, nil)
	ctx := context.Background()

	small, err := svc.OpenEnclosure(ctx, 1, enclosure.Advisory)
	require.NoError(t, err)
	big, err := svc.OpenEnclosure(ctx, 10, "")
	require.NoError(t, err)
	_, err = svc.HireZookeeper(ctx, "Mostafa Raef", "Morning")
	require.NoError(t, err)

	require.NoError(t, svc.Admit(ctx, small.ID(), animal.LionFromBirth("lion1", true, 12)))
	require.NoError(t, svc.Admit(ctx, small.ID(), animal.LionFromBirth("lion2", true, 14)))
	require.NoError(t, svc.Admit(ctx, big.ID(), animal.PigeonFromBirth("pigeon1", true, 10)))
	return svc
}

func TestCensusBroadcaster_Take(t *testing.T) {
	cb := NewCensusBroadcaster(logger.NewNop(), stockedService(t), nil, 0)

	census, err := cb.Take(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Hadiqat El-Hayawan", census.Zoo)
	assert.Equal(t, 3, census.Animals)
	assert.Equal(t, 1, census.Employees)
	assert.Equal(t, []zooevents.EnclosureCensus{
		{EnclosureID: "E0", Capacity: 1, Size: 2, OverCapacity: true},
		{EnclosureID: "E1", Capacity: 10, Size: 1},
	}, census.Enclosures)
	assert.Contains(t, census.RequestID, "census-")
}

func TestCensusBroadcaster_BroadcastNow(t *testing.T) {
	publisher := &MockEventPublisher{}
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("*cqrs.ZooCensusEvent")).Return(nil)
	cache := newMemoryCache()

	cb := NewCensusBroadcaster(logger.NewNop(), stockedService(t), publisher, time.Minute, WithCensusCache(cache))
	_, ok := cb.Last(context.Background())
	assert.False(t, ok)

	census, err := cb.BroadcastNow(context.Background())
	require.NoError(t, err)
	publisher.AssertNumberOfCalls(t, "Publish", 1)

	last, ok := cb.Last(context.Background())
	require.True(t, ok)
	assert.Same(t, census, last)
	assert.Equal(t, 3*time.Minute, cache.ttls["zoo:census:Hadiqat El-Hayawan"])
}

func TestCensusBroadcaster_LastFallsBackToCache(t *testing.T) {
	svc := stockedService(t)
	cache := newMemoryCache()

	writer := NewCensusBroadcaster(logger.NewNop(), svc, nil, time.Minute, WithCensusCache(cache))
	_, err := writer.BroadcastNow(context.Background())
	require.NoError(t, err)

	reader := NewCensusBroadcaster(logger.NewNop(), svc, nil, time.Minute, WithCensusCache(cache))
	last, ok := reader.Last(context.Background())
	require.True(t, ok)
	assert.Equal(t, 3, last.Animals)
}

func TestCensusBroadcaster_PublishErrorKeepsCensus(t *testing.T) {
	publisher := &MockEventPublisher{}
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus down"))

	cb := NewCensusBroadcaster(logger.NewNop(), stockedService(t), publisher, 0)
	census, err := cb.BroadcastNow(context.Background())
	require.Error(t, err)
	require.NotNil(t, census)

	_, ok := cb.Last(context.Background())
	assert.True(t, ok)
}

func TestCensusBroadcaster_StartStop(t *testing.T) {
	publisher := &MockEventPublisher{}
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	cb := NewCensusBroadcaster(logger.NewNop(), stockedService(t), publisher, 10*time.Millisecond)
	cb.Start(context.Background())

	assert.Eventually(t, func() bool {
		_, ok := cb.Last(context.Background())
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	cb.Stop()
	cb.Stop()

	disabled := NewCensusBroadcaster(logger.NewNop(), stockedService(t), nil, 0)
	disabled.Start(context.Background())
	disabled.Stop()
}
