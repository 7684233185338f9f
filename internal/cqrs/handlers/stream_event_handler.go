package handlers

import (
	"context"

	wmcqrs "github.com/ThreeDotsLabs/watermill/components/cqrs"
	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/api/jsonrpcx"
	zooevents "github.com/danghamo/zoo/internal/cqrs"
	"github.com/danghamo/zoo/pkg/logger"
)

// Stream notification methods
const (
	MethodEnclosureOpened = "zoo.enclosure.opened"
	MethodEmployeeHired   = "zoo.employee.hired"
	MethodAnimalAdded     = "zoo.animal.added"
	MethodAnimalRemoved   = "zoo.animal.removed"
	MethodAnimalTreated   = "zoo.animal.treated"
	MethodAnimalFed       = "zoo.animal.fed"
	MethodAnimalMoved     = "zoo.animal.moved"
	MethodCensus          = "zoo.census"
)

// Broadcaster delivers notifications to connected stream clients
type Broadcaster interface {
	BroadcastToAll(notification jsonrpcx.Notification)
	BroadcastToEnclosures(enclosures []string, notification jsonrpcx.Notification)
}

// StreamEventHandler forwards zoo events to live stream clients
type StreamEventHandler struct {
	broadcaster Broadcaster
	logger      *logger.Logger
}

// NewStreamEventHandler creates a new stream event handler
func NewStreamEventHandler(broadcaster Broadcaster, log *logger.Logger) *StreamEventHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &StreamEventHandler{
		broadcaster: broadcaster,
		logger:      log.WithComponent("stream-event-handler"),
	}
}

// EventHandlers returns one watermill handler per zoo event plus the census
func (h *StreamEventHandler) EventHandlers() []wmcqrs.EventHandler {
	return []wmcqrs.EventHandler{
		wmcqrs.NewEventHandler("stream."+zooevents.EnclosureRegisteredEventName, h.HandleEnclosureRegisteredEvent),
		wmcqrs.NewEventHandler("stream."+zooevents.EmployeeRegisteredEventName, h.HandleEmployeeRegisteredEvent),
		wmcqrs.NewEventHandler("stream."+zooevents.AnimalAddedEventName, h.HandleAnimalAddedEvent),
		wmcqrs.NewEventHandler("stream."+zooevents.AnimalRemovedEventName, h.HandleAnimalRemovedEvent),
		wmcqrs.NewEventHandler("stream."+zooevents.AnimalTreatedEventName, h.HandleAnimalTreatedEvent),
		wmcqrs.NewEventHandler("stream."+zooevents.AnimalFedEventName, h.HandleAnimalFedEvent),
		wmcqrs.NewEventHandler("stream."+zooevents.AnimalMovedEventName, h.HandleAnimalMovedEvent),
		wmcqrs.NewEventHandler("stream."+zooevents.ZooCensusEventName, h.HandleZooCensusEvent),
	}
}

// send targets the non-empty enclosure ids, or every client when there are none
func (h *StreamEventHandler) send(method string, params any, enclosures ...string) {
	targets := make([]string, 0, len(enclosures))
	for _, id := range enclosures {
		if id != "" {
			targets = append(targets, id)
		}
	}

	n := jsonrpcx.NewNotification(method, params)
	if len(targets) == 0 {
		h.broadcaster.BroadcastToAll(n)
	} else {
		h.broadcaster.BroadcastToEnclosures(targets, n)
	}

	h.logger.Debug("Notification forwarded",
		zap.String("method", method),
		zap.Strings("enclosures", targets))
}

// HandleEnclosureRegisteredEvent announces a new enclosure to everyone
func (h *StreamEventHandler) HandleEnclosureRegisteredEvent(ctx context.Context, event *zooevents.EnclosureRegisteredEvent) error {
	h.send(MethodEnclosureOpened, event)
	return nil
}

// HandleEmployeeRegisteredEvent announces a hire to everyone
func (h *StreamEventHandler) HandleEmployeeRegisteredEvent(ctx context.Context, event *zooevents.EmployeeRegisteredEvent) error {
	h.send(MethodEmployeeHired, event)
	return nil
}

func (h *StreamEventHandler) HandleAnimalAddedEvent(ctx context.Context, event *zooevents.AnimalAddedEvent) error {
	h.send(MethodAnimalAdded, event, event.EnclosureID)
	return nil
}

func (h *StreamEventHandler) HandleAnimalRemovedEvent(ctx context.Context, event *zooevents.AnimalRemovedEvent) error {
	h.send(MethodAnimalRemoved, event, event.EnclosureID)
	return nil
}

// HandleAnimalTreatedEvent goes to watchers of the animal's enclosure, or to everyone for an unplaced animal
func (h *StreamEventHandler) HandleAnimalTreatedEvent(ctx context.Context, event *zooevents.AnimalTreatedEvent) error {
	h.send(MethodAnimalTreated, event, event.EnclosureID)
	return nil
}

func (h *StreamEventHandler) HandleAnimalFedEvent(ctx context.Context, event *zooevents.AnimalFedEvent) error {
	h.send(MethodAnimalFed, event, event.EnclosureID)
	return nil
}

// HandleAnimalMovedEvent goes to watchers of either side of the move
func (h *StreamEventHandler) HandleAnimalMovedEvent(ctx context.Context, event *zooevents.AnimalMovedEvent) error {
	h.send(MethodAnimalMoved, event, event.FromEnclosureID, event.ToEnclosureID)
	return nil
}

func (h *StreamEventHandler) HandleZooCensusEvent(ctx context.Context, event *zooevents.ZooCensusEvent) error {
	h.send(MethodCensus, event)
	return nil
}
