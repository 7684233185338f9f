package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"

	"github.com/danghamo/zoo/pkg/config"
	"github.com/danghamo/zoo/pkg/logger"
	"github.com/danghamo/zoo/pkg/redisx"
)

const defaultCloseTimeout = 5 * time.Second

// Topic returns the topic an event is published on
func Topic(prefix, eventName string) string {
	return fmt.Sprintf("%s.%s", prefix, eventName)
}

// Bus carries zoo events from the application service to event handlers
type Bus struct {
	logger    *logger.Logger
	backend   string
	publisher message.Publisher
	router    *message.Router
	eventBus  *cqrs.EventBus
	processor *cqrs.EventProcessor

	newSubscriber func(handlerName string) (message.Subscriber, error)

	subMu sync.Mutex
	// subscribers owned by the bus and closed separately from the publisher
	subscribers []message.Subscriber

	published atomic.Int64

	closeOnce sync.Once
	closeErr  error
}

// New builds a bus for cfg.Backend. redisClient is only used by the redis backend.
func New(cfg config.EventsConfig, redisClient *redisx.Client, log *logger.Logger) (*Bus, error) {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	if cfg.TopicPrefix == "" {
		return nil, fmt.Errorf("topic prefix cannot be empty")
	}

	busLogger := log.WithComponent("eventbus")
	watermillLogger := logger.NewWatermillAdapter(busLogger)

	b := &Bus{logger: busLogger}

	switch {
	case cfg.UsesRedis():
		if redisClient == nil {
			return nil, fmt.Errorf("redis backend requires a redis client")
		}
		if err := b.useRedis(redisClient, cfg.ConsumerGroup, watermillLogger); err != nil {
			return nil, err
		}
	case cfg.Backend == "" || cfg.Backend == config.BackendMemory:
		b.useMemory(watermillLogger)
	default:
		return nil, fmt.Errorf("unknown events backend: %s", cfg.Backend)
	}

	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: defaultCloseTimeout,
	}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)
	b.router = router

	marshaler := cqrs.JSONMarshaler{GenerateName: cqrs.StructName}

	eventBus, err := cqrs.NewEventBusWithConfig(
		b.publisher,
		cqrs.EventBusConfig{
			GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
				return Topic(cfg.TopicPrefix, params.EventName), nil
			},
			Marshaler: marshaler,
			Logger:    watermillLogger,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	b.eventBus = eventBus

	processor, err := cqrs.NewEventProcessorWithConfig(
		router,
		cqrs.EventProcessorConfig{
			GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
				return Topic(cfg.TopicPrefix, params.EventName), nil
			},
			SubscriberConstructor: func(params cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
				return b.newSubscriber(params.HandlerName)
			},
			Marshaler: marshaler,
			Logger:    watermillLogger,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create event processor: %w", err)
	}
	b.processor = processor

	busLogger.Info("Event bus created",
		zap.String("backend", b.backend),
		zap.String("topicPrefix", cfg.TopicPrefix))

	return b, nil
}

func (b *Bus) useMemory(wl watermill.LoggerAdapter) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wl)
	b.backend = config.BackendMemory
	b.publisher = pubSub
	b.newSubscriber = func(string) (message.Subscriber, error) {
		return pubSub, nil
	}
}

// useRedis gives every handler its own consumer group so each one sees
// every event on its topic.
func (b *Bus) useRedis(client *redisx.Client, consumerGroup string, wl watermill.LoggerAdapter) error {
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: client.Client,
		},
		wl,
	)
	if err != nil {
		return fmt.Errorf("failed to create publisher: %w", err)
	}

	b.backend = config.BackendRedis
	b.publisher = publisher
	b.newSubscriber = func(handlerName string) (message.Subscriber, error) {
		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        client.Client,
				ConsumerGroup: ConsumerGroup(consumerGroup, handlerName),
			},
			wl,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create subscriber for %s: %w", handlerName, err)
		}

		b.subMu.Lock()
		b.subscribers = append(b.subscribers, subscriber)
		b.subMu.Unlock()
		return subscriber, nil
	}
	return nil
}

// ConsumerGroup returns the redis consumer group of one handler
func ConsumerGroup(base, handlerName string) string {
	if base == "" {
		return handlerName
	}
	return base + "." + handlerName
}

// Backend returns the backend name
func (b *Bus) Backend() string {
	return b.backend
}

// AddHandlers registers event handlers. Must be called before Run.
func (b *Bus) AddHandlers(handlers ...cqrs.EventHandler) error {
	if err := b.processor.AddHandlers(handlers...); err != nil {
		return fmt.Errorf("failed to register event handlers: %w", err)
	}
	return nil
}

// Publish sends event to every handler subscribed to its name
func (b *Bus) Publish(ctx context.Context, event interface{}) error {
	if err := b.eventBus.Publish(ctx, event); err != nil {
		return err
	}
	b.published.Add(1)
	return nil
}

// Published returns how many events were published successfully
func (b *Bus) Published() int64 {
	return b.published.Load()
}

// Run runs the router until ctx is cancelled or Close is called
func (b *Bus) Run(ctx context.Context) error {
	b.logger.Info("Starting event router")
	return b.router.Run(ctx)
}

// Running is closed once every handler is subscribed
func (b *Bus) Running() chan struct{} {
	return b.router.Running()
}

// WaitReady blocks until the router runs or ctx is done
func (b *Bus) WaitReady(ctx context.Context) error {
	select {
	case <-b.Running():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the router and closes the pub/sub. Safe to call more than once.
func (b *Bus) Close() error {
	b.closeOnce.Do(func() {
		b.logger.Info("Closing event bus")

		var errs []error
		if err := b.router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("router: %w", err))
		}
		if err := b.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}

		b.subMu.Lock()
		for _, sub := range b.subscribers {
			if err := sub.Close(); err != nil {
				errs = append(errs, fmt.Errorf("subscriber: %w", err))
			}
		}
		b.subMu.Unlock()
		b.closeErr = errors.Join(errs...)
	})
	return b.closeErr
}
