package query

import (
	"github.com/danghamo/zoo/internal/domain/enclosure"
	"github.com/danghamo/zoo/internal/domain/shared"
)

// Query types
const (
	TypeGetReport           = "GetReport"
	TypeGetRoster           = "GetRoster"
	TypeListEnclosures      = "ListEnclosures"
	TypeGetEnclosureAnimals = "GetEnclosureAnimals"
	TypeDescribeEnclosure   = "DescribeEnclosure"
	TypeFindAnimal          = "FindAnimal"
)

// GetReportQuery renders the zoo summary
type GetReportQuery struct {
	BaseQuery
}

// NewGetReportQuery creates a new get report query
func NewGetReportQuery() GetReportQuery {
	return GetReportQuery{BaseQuery: NewBaseQuery(TypeGetReport)}
}

// GetRosterQuery lists employees in hiring order
type GetRosterQuery struct {
	BaseQuery
}

// NewGetRosterQuery creates a new get roster query
func NewGetRosterQuery() GetRosterQuery {
	return GetRosterQuery{BaseQuery: NewBaseQuery(TypeGetRoster)}
}

// ListEnclosuresQuery lists enclosures in registration order
type ListEnclosuresQuery struct {
	BaseQuery
}

// NewListEnclosuresQuery creates a new list enclosures query
func NewListEnclosuresQuery() ListEnclosuresQuery {
	return ListEnclosuresQuery{BaseQuery: NewBaseQuery(TypeListEnclosures)}
}

// GetEnclosureAnimalsQuery returns snapshots of an enclosure's animals
type GetEnclosureAnimalsQuery struct {
	BaseQuery
	EnclosureID shared.ID `json:"enclosure_id"`
}

// NewGetEnclosureAnimalsQuery creates a new get enclosure animals query
func NewGetEnclosureAnimalsQuery(enclosureID shared.ID) GetEnclosureAnimalsQuery {
	return GetEnclosureAnimalsQuery{
		BaseQuery:   NewBaseQuery(TypeGetEnclosureAnimals),
		EnclosureID: enclosureID,
	}
}

// DescribeEnclosureQuery returns an enclosure's member listing
type DescribeEnclosureQuery struct {
	BaseQuery
	EnclosureID shared.ID `json:"enclosure_id"`
}

// NewDescribeEnclosureQuery creates a new describe enclosure query
func NewDescribeEnclosureQuery(enclosureID shared.ID) DescribeEnclosureQuery {
	return DescribeEnclosureQuery{
		BaseQuery:   NewBaseQuery(TypeDescribeEnclosure),
		EnclosureID: enclosureID,
	}
}

// FindAnimalQuery looks up the first animal with Name in an enclosure
type FindAnimalQuery struct {
	BaseQuery
	EnclosureID shared.ID `json:"enclosure_id"`
	Name        string    `json:"name"`
}

// NewFindAnimalQuery creates a new find animal query
func NewFindAnimalQuery(enclosureID shared.ID, name string) FindAnimalQuery {
	return FindAnimalQuery{
		BaseQuery:   NewBaseQuery(TypeFindAnimal),
		EnclosureID: enclosureID,
		Name:        name,
	}
}

// EnclosureView is the read model of one enclosure
type EnclosureView struct {
	ID           shared.ID                `json:"id"`
	Capacity     int                      `json:"capacity"`
	Policy       enclosure.CapacityPolicy `json:"capacity_policy"`
	Size         int                      `json:"size"`
	OverCapacity bool                     `json:"over_capacity"`
	Animals      []string                 `json:"animals"`
}

// NewEnclosureView builds the read model of e
func NewEnclosureView(e *enclosure.Enclosure) EnclosureView {
	return EnclosureView{
		ID:           e.ID(),
		Capacity:     e.Capacity(),
		Policy:       e.Policy(),
		Size:         e.Size(),
		OverCapacity: e.IsOverCapacity(),
		Animals:      e.AnimalNames(),
	}
}
