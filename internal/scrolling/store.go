package scrolling

import (
	"context"
	"strings"
	"sync"

	"github.com/urbanexpress/storefront/internal/state"
	"github.com/urbanexpress/storefront/pkg/enums"
	"github.com/urbanexpress/storefront/pkg/types"
)

const StorageKey = "scrollingContent"

// Slot is one bilingual banner message.
type Slot struct {
	ID        types.ID `json:"id"`
	IsActive  bool     `json:"isActive"`
	ContentAr string   `json:"contentAr"`
	ContentEn string   `json:"contentEn"`
}

type SlotPatch struct {
	IsActive  *bool   `json:"isActive,omitempty"`
	ContentAr *string `json:"contentAr,omitempty"`
	ContentEn *string `json:"contentEn,omitempty"`
}

func DefaultSlots() []Slot {
	return []Slot{
		{ID: "1", IsActive: true, ContentAr: "جميع الأسعار تتضمن ضريبة القيمة المضافة", ContentEn: "All prices inclusive VAT"},
		{ID: "2", IsActive: true, ContentAr: "توصيل مجاني للطلبات فوق 100 ريال", ContentEn: "Free delivery for orders above 100 SAR"},
		{ID: "3", IsActive: true, ContentAr: "خدمة عملاء 24/7", ContentEn: "24/7 customer service"},
		{ID: "4", IsActive: false, ContentAr: "ضمان الجودة والطازجة", ContentEn: "Quality and freshness guarantee"},
	}
}

type Store struct {
	deps state.Deps

	mu    sync.RWMutex
	slots []Slot
	rev   state.Revision
}

func NewStore(deps state.Deps) (*Store, error) {
	deps, err := deps.Validate()
	if err != nil {
		return nil, err
	}
	return &Store{deps: deps, slots: DefaultSlots()}, nil
}

func (s *Store) Load(ctx context.Context) {
	slots, stored := state.LoadJSON(ctx, s.deps, StorageKey, DefaultSlots)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = state.NonNil(slots)
	s.rev.Reset(stored)
}

func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	if !s.rev.Dirty() {
		s.mu.RUnlock()
		return nil
	}
	version := s.rev.Current()
	snapshot := append(make([]Slot, 0, len(s.slots)), s.slots...)
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

func (s *Store) UpdateContent(id types.ID, patch SlotPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if !s.slots[i].ID.Equal(id) {
			continue
		}
		if patch.IsActive != nil {
			s.slots[i].IsActive = *patch.IsActive
		}
		if patch.ContentAr != nil {
			s.slots[i].ContentAr = *patch.ContentAr
		}
		if patch.ContentEn != nil {
			s.slots[i].ContentEn = *patch.ContentEn
		}
		s.rev.Touch()
		return true
	}
	return false
}

func (s *Store) ToggleActive(id types.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].ID.Equal(id) {
			s.slots[i].IsActive = !s.slots[i].IsActive
			s.rev.Touch()
			return true
		}
	}
	return false
}

func (s *Store) ResetToDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = DefaultSlots()
	s.rev.Touch()
}

func (s *Store) Slots() []Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]Slot, 0, len(s.slots)), s.slots...)
}

// ActiveContent returns the non-blank texts of active slots in lang.
func (s *Store) ActiveContent(lang enums.Language) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	for _, slot := range s.slots {
		if !slot.IsActive {
			continue
		}
		text := slot.ContentEn
		if lang.IsArabic() {
			text = slot.ContentAr
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, text)
	}
	return out
}
