package zoo

import (
	"sync"

	"github.com/danghamo/zoo/internal/domain/enclosure"
	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/internal/domain/staff"
)

// Zoo is the aggregate root. It only keeps registries of the enclosures
// and employees that register themselves into it.
type Zoo struct {
	mu         sync.RWMutex
	name       string
	location   string
	enclosures []*enclosure.Enclosure
	employees  []staff.Member
}

// New creates an empty zoo
func New(name, location string) *Zoo {
	return &Zoo{
		name:       name,
		location:   location,
		enclosures: make([]*enclosure.Enclosure, 0),
		employees:  make([]staff.Member, 0),
	}
}

// Name returns the zoo's name
func (z *Zoo) Name() string {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.name
}

// Rename changes the zoo's name
func (z *Zoo) Rename(name string) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.name = name
}

// Location returns the zoo's location
func (z *Zoo) Location() string {
	return z.location
}

// AddEnclosure appends e to the enclosure registry. There is no duplicate check.
func (z *Zoo) AddEnclosure(e *enclosure.Enclosure) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.enclosures = append(z.enclosures, e)
}

// AddEmployee appends m to the staff registry. There is no duplicate check.
func (z *Zoo) AddEmployee(m staff.Member) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.employees = append(z.employees, m)
}

// Enclosures returns the registered enclosures in registration order
func (z *Zoo) Enclosures() []*enclosure.Enclosure {
	z.mu.RLock()
	defer z.mu.RUnlock()
	out := make([]*enclosure.Enclosure, len(z.enclosures))
	copy(out, z.enclosures)
	return out
}

// Employees returns the registered employees in registration order
func (z *Zoo) Employees() []staff.Member {
	z.mu.RLock()
	defer z.mu.RUnlock()
	out := make([]staff.Member, len(z.employees))
	copy(out, z.employees)
	return out
}

// EnclosureCount returns how many enclosures are registered
func (z *Zoo) EnclosureCount() int {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return len(z.enclosures)
}

// EmployeeCount returns how many employees are registered
func (z *Zoo) EmployeeCount() int {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return len(z.employees)
}

// EnclosureIDs returns enclosure identifiers in registration order
func (z *Zoo) EnclosureIDs() []shared.ID {
	z.mu.RLock()
	defer z.mu.RUnlock()
	ids := make([]shared.ID, 0, len(z.enclosures))
	for _, e := range z.enclosures {
		ids = append(ids, e.ID())
	}
	return ids
}

// FindEnclosure looks up a registered enclosure by id
func (z *Zoo) FindEnclosure(id shared.ID) (*enclosure.Enclosure, error) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	for _, e := range z.enclosures {
		if e.ID() == id {
			return e, nil
		}
	}
	return nil, shared.ErrNotFoundf("enclosure %s not found", id)
}

// FindEmployee looks up a registered employee by id
func (z *Zoo) FindEmployee(id shared.ID) (staff.Member, error) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	for _, m := range z.employees {
		if m.ID() == id {
			return m, nil
		}
	}
	return nil, shared.ErrNotFoundf("employee %s not found", id)
}

// RosterEntry is one line of the staff roster
type RosterEntry struct {
	ID   shared.ID  `json:"id"`
	Name string     `json:"name"`
	Role staff.Role `json:"role"`
}

// Roster returns id, name and role of every employee in registration order
func (z *Zoo) Roster() []RosterEntry {
	z.mu.RLock()
	defer z.mu.RUnlock()
	roster := make([]RosterEntry, 0, len(z.employees))
	for _, m := range z.employees {
		roster = append(roster, RosterEntry{ID: m.ID(), Name: m.Name(), Role: m.Role()})
	}
	return roster
}

// Compile-time registry checks
var (
	_ enclosure.Registry = (*Zoo)(nil)
	_ staff.Registry     = (*Zoo)(nil)
)
