package shared

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// ID represents a unique identifier
type ID string

// NewID generates a new unique ID
func NewID() ID {
	return ID(uuid.New().String())
}

// String returns the string representation of ID
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if ID is empty
func (id ID) IsEmpty() bool {
	return string(id) == ""
}

// Sequence allocates prefixed, monotonically increasing identifiers
// ("E0", "E1", ...). The zero value is not usable; use NewSequence.
type Sequence struct {
	prefix string
	next   atomic.Int64
}

// NewSequence creates a sequence whose first identifier is prefix+"0"
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Next returns the next unused identifier
func (s *Sequence) Next() ID {
	n := s.next.Add(1) - 1
	return ID(s.prefix + strconv.FormatInt(n, 10))
}

// Prefix returns the identifier prefix
func (s *Sequence) Prefix() string {
	return s.prefix
}

// Issued returns how many identifiers have been handed out
func (s *Sequence) Issued() int64 {
	return s.next.Load()
}

// Reset rewinds the sequence so the next identifier is prefix+"0" again
func (s *Sequence) Reset() {
	s.next.Store(0)
}
