package cqrs

import (
	"time"

	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/staff"
)

// EnclosureRegisteredEvent is published when an enclosure is opened in a zoo
type EnclosureRegisteredEvent struct {
	Zoo         string    `json:"zoo"`
	EnclosureID string    `json:"enclosure_id"`
	Capacity    int       `json:"capacity"`
	Policy      string    `json:"capacity_policy"`
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id"`
}

// EmployeeRegisteredEvent is published when a staff member is hired
type EmployeeRegisteredEvent struct {
	Zoo        string     `json:"zoo"`
	EmployeeID string     `json:"employee_id"`
	Name       string     `json:"name"`
	Role       staff.Role `json:"role"`
	Timestamp  time.Time  `json:"timestamp"`
	RequestID  string     `json:"request_id"`
}

// AnimalAddedEvent is published when an animal is admitted to an enclosure
type AnimalAddedEvent struct {
	EnclosureID  string          `json:"enclosure_id"`
	Animal       animal.Snapshot `json:"animal"`
	Size         int             `json:"size"`
	OverCapacity bool            `json:"over_capacity"`
	Timestamp    time.Time       `json:"timestamp"`
	RequestID    string          `json:"request_id"`
}

// AnimalRemovedEvent is published when an animal is released from an enclosure
type AnimalRemovedEvent struct {
	EnclosureID string          `json:"enclosure_id"`
	Animal      animal.Snapshot `json:"animal"`
	Size        int             `json:"size"`
	Timestamp   time.Time       `json:"timestamp"`
	RequestID   string          `json:"request_id"`
}

// AnimalTreatedEvent is published for every treatment, including no-op ones
type AnimalTreatedEvent struct {
	VeterinarianID string                 `json:"veterinarian_id"`
	EnclosureID    string                 `json:"enclosure_id,omitempty"`
	Animal         string                 `json:"animal"`
	Species        animal.Species         `json:"species"`
	Outcome        staff.TreatmentOutcome `json:"outcome"`
	HealthBefore   int                    `json:"health_before"`
	HealthAfter    int                    `json:"health_after"`
	Timestamp      time.Time              `json:"timestamp"`
	RequestID      string                 `json:"request_id"`
	Changes        map[string]interface{} `json:"changes,omitempty"`
}

// AnimalFedEvent is published when a zookeeper feeds an animal
type AnimalFedEvent struct {
	ZookeeperID string         `json:"zookeeper_id"`
	EnclosureID string         `json:"enclosure_id,omitempty"`
	Animal      string         `json:"animal"`
	Species     animal.Species `json:"species"`
	Sound       animal.Sound   `json:"sound"`
	Food        string         `json:"food"`
	Timestamp   time.Time      `json:"timestamp"`
	RequestID   string         `json:"request_id"`
}

// AnimalMovedEvent is published when a zookeeper moves an animal.
// FromEnclosureID is empty for an animal that was not placed anywhere.
type AnimalMovedEvent struct {
	ZookeeperID     string                 `json:"zookeeper_id"`
	Animal          string                 `json:"animal"`
	Species         animal.Species         `json:"species"`
	FromEnclosureID string                 `json:"from_enclosure_id,omitempty"`
	ToEnclosureID   string                 `json:"to_enclosure_id"`
	Timestamp       time.Time              `json:"timestamp"`
	RequestID       string                 `json:"request_id"`
	Changes         map[string]interface{} `json:"changes,omitempty"`
}

// EnclosureCensus is one enclosure's occupancy at census time
type EnclosureCensus struct {
	EnclosureID  string `json:"enclosure_id"`
	Capacity     int    `json:"capacity"`
	Size         int    `json:"size"`
	OverCapacity bool   `json:"over_capacity"`
}

// ZooCensusEvent is published periodically with the occupancy of every enclosure.
// It reports state and is not caused by a mutation.
type ZooCensusEvent struct {
	Zoo        string            `json:"zoo"`
	Enclosures []EnclosureCensus `json:"enclosures"`
	Animals    int               `json:"animals"`
	Employees  int               `json:"employees"`
	Timestamp  time.Time         `json:"timestamp"`
	RequestID  string            `json:"request_id"`
}

// Event names as resolved by the JSON marshaler from the struct names
const (
	EnclosureRegisteredEventName = "EnclosureRegisteredEvent"
	EmployeeRegisteredEventName  = "EmployeeRegisteredEvent"
	AnimalAddedEventName         = "AnimalAddedEvent"
	AnimalRemovedEventName       = "AnimalRemovedEvent"
	AnimalTreatedEventName       = "AnimalTreatedEvent"
	AnimalFedEventName           = "AnimalFedEvent"
	AnimalMovedEventName         = "AnimalMovedEvent"
	ZooCensusEventName           = "ZooCensusEvent"
)

// EventNames lists every event caused by a zoo mutation in a stable order.
// ZooCensusEventName is not included.
func EventNames() []string {
	return []string{
		EnclosureRegisteredEventName,
		EmployeeRegisteredEventName,
		AnimalAddedEventName,
		AnimalRemovedEventName,
		AnimalTreatedEventName,
		AnimalFedEventName,
		AnimalMovedEventName,
	}
}
