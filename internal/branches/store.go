package branches

import (
	"context"
	"sync"

	"github.com/urbanexpress/storefront/internal/state"
	"github.com/urbanexpress/storefront/pkg/types"
)

const StorageKey = "admin_branches"

type Store struct {
	deps state.Deps

	mu       sync.RWMutex
	branches []Branch
	rev      state.Revision
}

func NewStore(deps state.Deps) (*Store, error) {
	deps, err := deps.Validate()
	if err != nil {
		return nil, err
	}
	return &Store{deps: deps, branches: DefaultBranches(deps.Clock())}, nil
}

func (s *Store) Load(ctx context.Context) {
	branches, stored := state.LoadJSON(ctx, s.deps, StorageKey, func() []Branch {
		return DefaultBranches(s.deps.Clock())
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches = state.NonNil(branches)
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

// AddBranch appends an active branch and returns its id.
func (s *Store) AddBranch(input BranchInput) types.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.deps.Clock()
	id := s.deps.NewID()
	s.branches = append(s.branches, Branch{
		ID:              id,
		NameAr:          input.NameAr,
		NameEn:          input.NameEn,
		AddressAr:       input.AddressAr,
		AddressEn:       input.AddressEn,
		Phone:           input.Phone,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		PickupService:   input.PickupService,
		DeliveryService: input.DeliveryService,
		Staff:           cloneStaff(input.Staff),
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	s.rev.Touch()
	return id
}

func (s *Store) UpdateBranch(id types.ID, patch BranchPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.branches {
		if s.branches[i].ID.Equal(id) {
			patch.apply(&s.branches[i])
			s.branches[i].UpdatedAt = s.deps.Clock()
			s.rev.Touch()
			return true
		}
	}
	return false
}

// DeleteBranch removes the branch. Orders and stock that reference it are
// left untouched.
func (s *Store) DeleteBranch(id types.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.branches[:0:0]
	for _, b := range s.branches {
		if !b.ID.Equal(id) {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(s.branches) {
		return false
	}
	s.branches = kept
	s.rev.Touch()
	return true
}

func (s *Store) Branches() []Branch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) Branch(id types.ID) (Branch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.branches {
		if b.ID.Equal(id) {
			return cloneBranch(b), true
		}
	}
	return Branch{}, false
}

func (s *Store) snapshotLocked() []Branch {
	out := make([]Branch, 0, len(s.branches))
	for _, b := range s.branches {
		out = append(out, cloneBranch(b))
	}
	return out
}
