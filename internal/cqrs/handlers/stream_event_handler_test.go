package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/zoo/internal/api/jsonrpcx"
	zooevents "github.com/danghamo/zoo/internal/cqrs"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/pkg/logger"
)

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) BroadcastToAll(n jsonrpcx.Notification) {
	m.Called(n.Method)
}

func (m *MockBroadcaster) BroadcastToEnclosures(enclosures []string, n jsonrpcx.Notification) {
	m.Called(enclosures, n.Method)
}

func TestStreamEventHandler_Targets(t *testing.T) {
	b := &MockBroadcaster{}
	b.On("BroadcastToAll", mock.Anything).Return()
	b.On("BroadcastToEnclosures", mock.Anything, mock.Anything).Return()

	h := NewStreamEventHandler(b, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, h.HandleEnclosureRegisteredEvent(ctx, &zooevents.EnclosureRegisteredEvent{EnclosureID: "E0"}))
	require.NoError(t, h.HandleEmployeeRegisteredEvent(ctx, &zooevents.EmployeeRegisteredEvent{EmployeeID: "EMP0"}))
	require.NoError(t, h.HandleAnimalAddedEvent(ctx, &zooevents.AnimalAddedEvent{EnclosureID: "E1", Animal: animal.Snapshot{Name: "lion1"}}))
	require.NoError(t, h.HandleAnimalRemovedEvent(ctx, &zooevents.AnimalRemovedEvent{EnclosureID: "E1"}))
	require.NoError(t, h.HandleAnimalTreatedEvent(ctx, &zooevents.AnimalTreatedEvent{EnclosureID: "E1", Animal: "lion1"}))
	require.NoError(t, h.HandleAnimalFedEvent(ctx, &zooevents.AnimalFedEvent{Animal: "fish1"}))
	require.NoError(t, h.HandleAnimalMovedEvent(ctx, &zooevents.AnimalMovedEvent{Animal: "lion1", FromEnclosureID: "E1", ToEnclosureID: "E0"}))
	require.NoError(t, h.HandleAnimalMovedEvent(ctx, &zooevents.AnimalMovedEvent{Animal: "giraffe1", ToEnclosureID: "E0"}))
	require.NoError(t, h.HandleZooCensusEvent(ctx, &zooevents.ZooCensusEvent{Zoo: "Z"}))

	b.AssertCalled(t, "BroadcastToAll", MethodEnclosureOpened)
	b.AssertCalled(t, "BroadcastToAll", MethodEmployeeHired)
	b.AssertCalled(t, "BroadcastToEnclosures", []string{"E1"}, MethodAnimalAdded)
	b.AssertCalled(t, "BroadcastToEnclosures", []string{"E1"}, MethodAnimalRemoved)
	b.AssertCalled(t, "BroadcastToEnclosures", []string{"E1"}, MethodAnimalTreated)
	b.AssertCalled(t, "BroadcastToAll", MethodAnimalFed)
	b.AssertCalled(t, "BroadcastToEnclosures", []string{"E1", "E0"}, MethodAnimalMoved)
	b.AssertCalled(t, "BroadcastToEnclosures", []string{"E0"}, MethodAnimalMoved)
	b.AssertCalled(t, "BroadcastToAll", MethodCensus)
	b.AssertNumberOfCalls(t, "BroadcastToAll", 4)
	b.AssertNumberOfCalls(t, "BroadcastToEnclosures", 5)
}

func TestStreamEventHandler_EventHandlers(t *testing.T) {
	h := NewStreamEventHandler(&MockBroadcaster{}, nil)

	var names []string
	for _, eh := range h.EventHandlers() {
		names = append(names, eh.HandlerName())
	}

	var want []string
	for _, name := range append(zooevents.EventNames(), zooevents.ZooCensusEventName) {
		want = append(want, "stream."+name)
	}
	assert.Equal(t, want, names)
}
