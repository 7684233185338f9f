package enclosure

import (
	"strings"

	"github.com/danghamo/zoo/internal/domain/shared"
)

// CapacityPolicy decides whether an enclosure's capacity is a hard limit
type CapacityPolicy string

const (
	// Advisory records capacity but never rejects an animal
	Advisory CapacityPolicy = "advisory"
	// Enforced rejects animals once the enclosure is full
	Enforced CapacityPolicy = "enforced"
)

// String returns string representation
func (p CapacityPolicy) String() string {
	return string(p)
}

// IsValid checks if policy is known
func (p CapacityPolicy) IsValid() bool {
	return p == Advisory || p == Enforced
}

// ParseCapacityPolicy parses a policy name, case-insensitively
func ParseCapacityPolicy(s string) (CapacityPolicy, error) {
	p := CapacityPolicy(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", shared.ErrInvalidInputf("unknown capacity policy %q", s)
	}
	return p, nil
}
