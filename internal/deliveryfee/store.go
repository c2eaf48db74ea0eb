package deliveryfee

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/urbanexpress/storefront/internal/state"
)

const StorageKey = "admin_delivery_fee_tiers"

// TierPatch updates individual tier fields. ClearMax makes the tier
// unbounded.
type TierPatch struct {
	MinAmount *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount *decimal.Decimal `json:"maxAmount,omitempty"`
	ClearMax  bool             `json:"clearMax,omitempty"`
	Fee       *decimal.Decimal `json:"fee,omitempty"`
}

func (p TierPatch) apply(t *Tier) {
	if p.MinAmount != nil {
		t.MinAmount = *p.MinAmount
	}
	if p.MaxAmount != nil {
		max := *p.MaxAmount
		t.MaxAmount = &max
	}
	if p.ClearMax {
		t.MaxAmount = nil
	}
	if p.Fee != nil {
		t.Fee = *p.Fee
	}
}

// Store holds the admin-editable tier table, always sorted by MinAmount.
type Store struct {
	deps state.Deps

	mu    sync.RWMutex
	tiers []Tier
	rev   state.Revision
}

func NewStore(deps state.Deps) (*Store, error) {
	deps, err := deps.Validate()
	if err != nil {
		return nil, err
	}
	return &Store{deps: deps, tiers: DefaultTiers()}, nil
}

func (s *Store) Load(ctx context.Context) {
	tiers, stored := state.LoadJSON(ctx, s.deps, StorageKey, DefaultTiers)
	tiers = cloneTiers(tiers)
	SortTiers(tiers)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiers = tiers
	s.rev.Reset(stored)
}

func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	if !s.rev.Dirty() {
		s.mu.RUnlock()
		return nil
	}
	version := s.rev.Current()
	snapshot := cloneTiers(s.tiers)
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

// UpdateTier merges patch into the tier at index and re-sorts.
func (s *Store) UpdateTier(index int, patch TierPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.tiers) {
		return false
	}
	patch.apply(&s.tiers[index])
	SortTiers(s.tiers)
	s.rev.Touch()
	return true
}

func (s *Store) AddTier(tier Tier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiers = append(s.tiers, cloneTiers([]Tier{tier})...)
	SortTiers(s.tiers)
	s.rev.Touch()
}

func (s *Store) RemoveTier(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.tiers) {
		return false
	}
	s.tiers = append(s.tiers[:index:index], s.tiers[index+1:]...)
	s.rev.Touch()
	return true
}

func (s *Store) ResetToDefault() {
	s.SetTiers(DefaultTiers())
}

// SetTiers replaces the whole table.
func (s *Store) SetTiers(tiers []Tier) {
	next := cloneTiers(tiers)
	SortTiers(next)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiers = next
	s.rev.Touch()
}

func (s *Store) Tiers() []Tier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTiers(s.tiers)
}

// Fee resolves the delivery fee for total against the current table.
func (s *Store) Fee(total decimal.Decimal) decimal.Decimal {
	return CalculateDeliveryFee(total, s.Tiers())
}

func cloneTiers(tiers []Tier) []Tier {
	out := make([]Tier, 0, len(tiers))
	for _, t := range tiers {
		if t.MaxAmount != nil {
			max := *t.MaxAmount
			t.MaxAmount = &max
		}
		out = append(out, t)
	}
	return out
}
