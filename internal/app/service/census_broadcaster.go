package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	zooevents "github.com/danghamo/zoo/internal/cqrs"
	"github.com/danghamo/zoo/pkg/logger"
)

// CensusCache keeps the latest census where other processes can read it
type CensusCache interface {
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, v any) (bool, error)
}

const censusKeyPrefix = "zoo:census:"

// CensusBroadcaster periodically publishes the occupancy of every enclosure
type CensusBroadcaster struct {
	logger    *logger.Logger
	service   *ZooService
	publisher zooevents.EventPublisher
	interval  time.Duration
	cache     CensusCache

	last     atomic.Pointer[zooevents.ZooCensusEvent]
	started  atomic.Bool
	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

// CensusOption configures a CensusBroadcaster
type CensusOption func(*CensusBroadcaster)

// WithCensusCache also stores every census in cache, expiring after three intervals
func WithCensusCache(cache CensusCache) CensusOption {
	return func(cb *CensusBroadcaster) {
		cb.cache = cache
	}
}

// NewCensusBroadcaster creates a census broadcaster. A zero interval disables the ticker;
// BroadcastNow still works.
func NewCensusBroadcaster(log *logger.Logger, svc *ZooService, publisher zooevents.EventPublisher, interval time.Duration, opts ...CensusOption) *CensusBroadcaster {
	if log == nil {
		log = logger.NewNop()
	}
	if publisher == nil {
		publisher = zooevents.NopPublisher{}
	}
	cb := &CensusBroadcaster{
		logger:    log.WithComponent("census-broadcaster"),
		service:   svc,
		publisher: publisher,
		interval:  interval,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(cb)
	}
	return cb
}

// Start begins the periodic census
func (cb *CensusBroadcaster) Start(ctx context.Context) {
	if cb.interval <= 0 {
		cb.logger.Info("Periodic census disabled")
		return
	}
	if !cb.started.CompareAndSwap(false, true) {
		return
	}

	cb.logger.Info("Starting census broadcaster", zap.Duration("interval", cb.interval))
	go cb.loop(ctx)
}

// Stop ends the periodic census and waits for the loop to exit
func (cb *CensusBroadcaster) Stop() {
	cb.stopOnce.Do(func() {
		cb.logger.Info("Stopping census broadcaster")
		close(cb.stopChan)
	})
	if cb.started.Load() {
		<-cb.done
	}
}

func (cb *CensusBroadcaster) loop(ctx context.Context) {
	defer close(cb.done)

	ticker := time.NewTicker(cb.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cb.stopChan:
			return
		case <-ticker.C:
			if _, err := cb.BroadcastNow(ctx); err != nil {
				cb.logger.Error("Failed to publish census", zap.Error(err))
			}
		}
	}
}

// Take builds a census of the zoo without publishing it
func (cb *CensusBroadcaster) Take(ctx context.Context) (*zooevents.ZooCensusEvent, error) {
	views, err := cb.service.Enclosures(ctx)
	if err != nil {
		return nil, err
	}
	roster, err := cb.service.Roster(ctx)
	if err != nil {
		return nil, err
	}

	event := &zooevents.ZooCensusEvent{
		Zoo:        cb.service.Zoo().Name(),
		Enclosures: make([]zooevents.EnclosureCensus, 0, len(views)),
		Employees:  len(roster),
		Timestamp:  time.Now(),
		RequestID:  "census-" + uuid.NewString(),
	}
	for _, v := range views {
		event.Enclosures = append(event.Enclosures, zooevents.EnclosureCensus{
			EnclosureID:  v.ID.String(),
			Capacity:     v.Capacity,
			Size:         v.Size,
			OverCapacity: v.OverCapacity,
		})
		event.Animals += v.Size
	}
	return event, nil
}

// BroadcastNow takes a census, remembers it and publishes it
func (cb *CensusBroadcaster) BroadcastNow(ctx context.Context) (*zooevents.ZooCensusEvent, error) {
	event, err := cb.Take(ctx)
	if err != nil {
		return nil, err
	}
	cb.last.Store(event)

	if cb.cache != nil {
		if err := cb.cache.SetJSON(ctx, censusKeyPrefix+event.Zoo, event, 3*cb.interval); err != nil {
			cb.logger.Warn("Failed to cache census", zap.Error(err))
		}
	}

	if err := cb.publisher.Publish(ctx, event); err != nil {
		return event, err
	}

	cb.logger.Debug("Census published",
		zap.Int("enclosures", len(event.Enclosures)),
		zap.Int("animals", event.Animals))
	return event, nil
}

// Last returns the most recent census, falling back to the cache when this
// process has not taken one yet
func (cb *CensusBroadcaster) Last(ctx context.Context) (*zooevents.ZooCensusEvent, bool) {
	if event := cb.last.Load(); event != nil {
		return event, true
	}
	if cb.cache == nil {
		return nil, false
	}

	var event zooevents.ZooCensusEvent
	found, err := cb.cache.GetJSON(ctx, censusKeyPrefix+cb.service.Zoo().Name(), &event)
	if err != nil {
		cb.logger.Warn("Failed to read cached census", zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &event, true
}
