package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	wmcqrs "github.com/ThreeDotsLabs/watermill/components/cqrs"
	"go.uber.org/zap"

	zooevents "github.com/danghamo/zoo/internal/cqrs"
	"github.com/danghamo/zoo/internal/domain/staff"
	"github.com/danghamo/zoo/pkg/logger"
)

// Entry is one line of the audit journal
type Entry struct {
	Event     string    `json:"event"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditEventHandler logs every zoo event and keeps them in an in-memory journal
type AuditEventHandler struct {
	logger *logger.Logger

	mu      sync.RWMutex
	entries []Entry
}

// NewAuditEventHandler creates a new audit event handler
func NewAuditEventHandler(log *logger.Logger) *AuditEventHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &AuditEventHandler{
		logger:  log.WithComponent("audit-event-handler"),
		entries: make([]Entry, 0),
	}
}

// EventHandlers returns one watermill handler per zoo event
func (h *AuditEventHandler) EventHandlers() []wmcqrs.EventHandler {
	return []wmcqrs.EventHandler{
		wmcqrs.NewEventHandler("audit."+zooevents.EnclosureRegisteredEventName, h.HandleEnclosureRegisteredEvent),
		wmcqrs.NewEventHandler("audit."+zooevents.EmployeeRegisteredEventName, h.HandleEmployeeRegisteredEvent),
		wmcqrs.NewEventHandler("audit."+zooevents.AnimalAddedEventName, h.HandleAnimalAddedEvent),
		wmcqrs.NewEventHandler("audit."+zooevents.AnimalRemovedEventName, h.HandleAnimalRemovedEvent),
		wmcqrs.NewEventHandler("audit."+zooevents.AnimalTreatedEventName, h.HandleAnimalTreatedEvent),
		wmcqrs.NewEventHandler("audit."+zooevents.AnimalFedEventName, h.HandleAnimalFedEvent),
		wmcqrs.NewEventHandler("audit."+zooevents.AnimalMovedEventName, h.HandleAnimalMovedEvent),
	}
}

// Entries returns a copy of the journal in arrival order
func (h *AuditEventHandler) Entries() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of journal entries
func (h *AuditEventHandler) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

func (h *AuditEventHandler) record(event, requestID string, ts time.Time, message string, fields ...zap.Field) {
	h.mu.Lock()
	h.entries = append(h.entries, Entry{
		Event:     event,
		Message:   message,
		RequestID: requestID,
		Timestamp: ts,
	})
	h.mu.Unlock()

	fields = append(fields, zap.String("event", event), zap.String("requestId", requestID))
	h.logger.Info(message, fields...)
}

// HandleEnclosureRegisteredEvent records a newly opened enclosure
func (h *AuditEventHandler) HandleEnclosureRegisteredEvent(ctx context.Context, event *zooevents.EnclosureRegisteredEvent) error {
	h.record(zooevents.EnclosureRegisteredEventName, event.RequestID, event.Timestamp,
		fmt.Sprintf("Enclosure %s opened in %s (capacity %d)", event.EnclosureID, event.Zoo, event.Capacity),
		zap.String("enclosureId", event.EnclosureID),
		zap.String("policy", event.Policy))
	return nil
}

// HandleEmployeeRegisteredEvent records a hire
func (h *AuditEventHandler) HandleEmployeeRegisteredEvent(ctx context.Context, event *zooevents.EmployeeRegisteredEvent) error {
	h.record(zooevents.EmployeeRegisteredEventName, event.RequestID, event.Timestamp,
		fmt.Sprintf("%s hired as %s (%s)", event.Name, event.Role, event.EmployeeID),
		zap.String("employeeId", event.EmployeeID))
	return nil
}

// HandleAnimalAddedEvent records an admission
func (h *AuditEventHandler) HandleAnimalAddedEvent(ctx context.Context, event *zooevents.AnimalAddedEvent) error {
	msg := fmt.Sprintf("%s added to %s", event.Animal.Name, event.EnclosureID)
	if event.OverCapacity {
		msg += " (over capacity)"
	}
	h.record(zooevents.AnimalAddedEventName, event.RequestID, event.Timestamp, msg,
		zap.String("enclosureId", event.EnclosureID),
		zap.Int("size", event.Size))
	return nil
}

// HandleAnimalRemovedEvent records a release
func (h *AuditEventHandler) HandleAnimalRemovedEvent(ctx context.Context, event *zooevents.AnimalRemovedEvent) error {
	h.record(zooevents.AnimalRemovedEventName, event.RequestID, event.Timestamp,
		fmt.Sprintf("%s removed from %s", event.Animal.Name, event.EnclosureID),
		zap.String("enclosureId", event.EnclosureID),
		zap.Int("size", event.Size))
	return nil
}

// HandleAnimalTreatedEvent records a treatment
func (h *AuditEventHandler) HandleAnimalTreatedEvent(ctx context.Context, event *zooevents.AnimalTreatedEvent) error {
	var msg string
	switch event.Outcome {
	case staff.AlreadyHealthy:
		msg = fmt.Sprintf("%s is already healthy", event.Animal)
	default:
		msg = fmt.Sprintf("Treating the animal %s: %d -> %d", event.Animal, event.HealthBefore, event.HealthAfter)
	}
	h.record(zooevents.AnimalTreatedEventName, event.RequestID, event.Timestamp, msg,
		zap.String("veterinarianId", event.VeterinarianID),
		zap.String("outcome", event.Outcome.String()),
		zap.Any("changes", event.Changes))
	return nil
}

// HandleAnimalFedEvent records a feeding
func (h *AuditEventHandler) HandleAnimalFedEvent(ctx context.Context, event *zooevents.AnimalFedEvent) error {
	h.record(zooevents.AnimalFedEventName, event.RequestID, event.Timestamp,
		fmt.Sprintf("Feeding %s %s %s (%s)", event.Species.DisplayName(), event.Animal, event.Food, event.Sound),
		zap.String("zookeeperId", event.ZookeeperID))
	return nil
}

// HandleAnimalMovedEvent records a relocation
func (h *AuditEventHandler) HandleAnimalMovedEvent(ctx context.Context, event *zooevents.AnimalMovedEvent) error {
	msg := fmt.Sprintf("%s placed in %s", event.Animal, event.ToEnclosureID)
	if event.FromEnclosureID != "" {
		msg = fmt.Sprintf("%s moved from %s to %s", event.Animal, event.FromEnclosureID, event.ToEnclosureID)
	}
	h.record(zooevents.AnimalMovedEventName, event.RequestID, event.Timestamp, msg,
		zap.String("zookeeperId", event.ZookeeperID),
		zap.Any("changes", event.Changes))
	return nil
}
