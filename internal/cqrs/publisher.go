package cqrs

import (
	"context"
)

// EventPublisher interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// NopPublisher drops every event. Used when a zoo runs without an event bus.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, interface{}) error { return nil }
