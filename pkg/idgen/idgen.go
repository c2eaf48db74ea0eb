package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/urbanexpress/storefront/pkg/types"
)

// Generator hands out record identifiers.
type Generator interface {
	NewID() types.ID
}

// UUID generates random v4 identifiers.
type UUID struct{}

func (UUID) NewID() types.ID {
	return types.ID(uuid.NewString())
}

// Sequence generates monotonically increasing numeric identifiers starting after Start.
// Safe for concurrent use.
type Sequence struct {
	next atomic.Int64
}

// NewSequence returns a sequence whose first ID is start+1.
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.next.Store(start)
	return s
}

func (s *Sequence) NewID() types.ID {
	return types.ID(strconv.FormatInt(s.next.Add(1), 10))
}
