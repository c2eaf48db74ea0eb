package stock

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/urbanexpress/storefront/internal/state"
	"github.com/urbanexpress/storefront/pkg/types"
)

const StorageKey = "admin_stock"

// Key builds the composite "branch-product-unit" stock key.
func Key(branchID, productID, unitID types.ID) string {
	return fmt.Sprintf("%s-%s-%s", branchID.Normalized(), productID.Normalized(), unitID.Normalized())
}

// Store tracks on-hand quantities per branch, product and unit.
type Store struct {
	deps state.Deps

	mu     sync.RWMutex
	levels map[string]decimal.Decimal
	rev    state.Revision
}

func NewStore(deps state.Deps) (*Store, error) {
	deps, err := deps.Validate()
	if err != nil {
		return nil, err
	}
	return &Store{deps: deps, levels: map[string]decimal.Decimal{}}, nil
}

func (s *Store) Load(ctx context.Context) {
	levels, stored := state.LoadJSON(ctx, s.deps, StorageKey, func() map[string]decimal.Decimal {
		return map[string]decimal.Decimal{}
	})
	if levels == nil {
		levels = map[string]decimal.Decimal{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels = levels
	s.rev.Reset(stored)
}

func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	if !s.rev.Dirty() {
		s.mu.RUnlock()
		return nil
	}
	version := s.rev.Current()
	snapshot := s.snapshotLocked()
	s.mu.RUnlock()

	if err := state.SaveJSON(ctx, s.deps, StorageKey, snapshot); err != nil {
		return err
	}
	s.mu.Lock()
	s.rev.MarkSaved(version)
	s.mu.Unlock()
	return nil
}

func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev.Dirty()
}

// UpdateStock sets the quantity, clamping negatives to zero.
func (s *Store) UpdateStock(branchID, productID, unitID types.ID, quantity decimal.Decimal) decimal.Decimal {
	clamped := decimal.Max(decimal.Zero, quantity)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[Key(branchID, productID, unitID)] = clamped
	s.rev.Touch()
	return clamped
}

// GetStock returns the stored quantity or zero.
func (s *Store) GetStock(branchID, productID, unitID types.ID) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if q, ok := s.levels[Key(branchID, productID, unitID)]; ok {
		return q
	}
	return decimal.Zero
}

func (s *Store) Snapshot() map[string]decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(s.levels))
	for k, v := range s.levels {
		out[k] = v
	}
	return out
}
