package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/urbanexpress/storefront/internal/state"
	"github.com/urbanexpress/storefront/pkg/enums"
	"github.com/urbanexpress/storefront/pkg/types"
)

const StorageKey = "admin_notifications"

type Notification struct {
	ID        types.ID               `json:"id"`
	Type      enums.NotificationType `json:"type"`
	Title     string                 `json:"title"`
	TitleAr   string                 `json:"titleAr"`
	Message   string                 `json:"message"`
	MessageAr string                 `json:"messageAr"`
	OrderID   *types.ID              `json:"orderId,omitempty"`
	IsRead    bool                   `json:"isRead"`
	CreatedAt time.Time              `json:"createdAt"`
}

type Input struct {
	Type      enums.NotificationType `json:"type" validate:"required"`
	Title     string                 `json:"title" validate:"required"`
	TitleAr   string                 `json:"titleAr"`
	Message   string                 `json:"message"`
	MessageAr string                 `json:"messageAr"`
	OrderID   *types.ID              `json:"orderId"`
	IsRead    bool                   `json:"isRead"`
}

// Store keeps admin notifications newest first.
type Store struct {
	deps state.Deps

	mu    sync.RWMutex
	items []Notification
	rev   state.Revision
}

func NewStore(deps state.Deps) (*Store, error) {
	deps, err := deps.Validate()
	if err != nil {
		return nil, err
	}
	return &Store{deps: deps, items: []Notification{}}, nil
}

func (s *Store) Load(ctx context.Context) {
	items, stored := state.LoadJSON(ctx, s.deps, StorageKey, func() []Notification { return []Notification{} })
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = state.NonNil(items)
	s.rev.Reset(stored)
}

func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	if !s.rev.Dirty() {
		s.mu.RUnlock()
		return nil
	}
	version := s.rev.Current()
	snapshot := append(make([]Notification, 0, len(s.items)), s.items...)
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

// AddNotification prepends a notification and returns its id.
func (s *Store) AddNotification(input Input) types.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.deps.NewID()
	n := Notification{
		ID:        id,
		Type:      input.Type,
		Title:     input.Title,
		TitleAr:   input.TitleAr,
		Message:   input.Message,
		MessageAr: input.MessageAr,
		IsRead:    input.IsRead,
		CreatedAt: s.deps.Clock(),
	}
	if input.OrderID != nil {
		orderID := input.OrderID.Normalized()
		n.OrderID = &orderID
	}
	s.items = append([]Notification{n}, s.items...)
	s.rev.Touch()
	return id
}

func (s *Store) MarkNotificationAsRead(id types.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID.Equal(id) {
			if !s.items[i].IsRead {
				s.items[i].IsRead = true
				s.rev.Touch()
			}
			return true
		}
	}
	return false
}

// MarkAllRead returns how many notifications changed.
func (s *Store) MarkAllRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for i := range s.items {
		if !s.items[i].IsRead {
			s.items[i].IsRead = true
			changed++
		}
	}
	if changed > 0 {
		s.rev.Touch()
	}
	return changed
}

func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.items {
		if !n.IsRead {
			count++
		}
	}
	return count
}

func (s *Store) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]Notification, 0, len(s.items)), s.items...)
}
