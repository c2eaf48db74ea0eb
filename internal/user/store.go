package user

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"github.com/urbanexpress/storefront/internal/state"
)

const (
	NameKey          = "userName"
	PhoneKey         = "userPhone"
	AuthenticatedKey = "isAuthenticated"

	guestName = "Guest"
)

// State is the signed-in customer. Empty strings mean unknown.
type State struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// DisplayName is the name, else the phone, else "Guest".
func (s State) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Phone != "" {
		return s.Phone
	}
	return guestName
}

type keyAction int

const (
	keyWrite keyAction = iota + 1
	keyRemove
)

// pendingKey is a queued key action stamped with the revision that queued it.
type pendingKey struct {
	action  keyAction
	version uint64
}

// Store keeps the customer identity as three raw string keys.
type Store struct {
	deps state.Deps

	mu      sync.RWMutex
	current State
	rev     state.Revision
	pending map[string]pendingKey
}

func NewStore(deps state.Deps) (*Store, error) {
	deps, err := deps.Validate()
	if err != nil {
		return nil, err
	}
	return &Store{deps: deps, pending: map[string]pendingKey{}}, nil
}

func (s *Store) Load(ctx context.Context) {
	s.LoadFromStorage(ctx)
}

// LoadFromStorage replaces the current user only when something is stored.
func (s *Store) LoadFromStorage(ctx context.Context) {
	name, _ := state.GetRaw(ctx, s.deps, NameKey)
	phone, _ := state.GetRaw(ctx, s.deps, PhoneKey)
	auth, _ := state.GetRaw(ctx, s.deps, AuthenticatedKey)
	authenticated := auth == "true"

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = map[string]pendingKey{}
	s.rev.Reset(true)
	if name != "" || phone != "" || authenticated {
		s.current = State{Name: name, Phone: phone, IsAuthenticated: authenticated}
	}
}

func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	current := s.current
	pending := make(map[string]pendingKey, len(s.pending))
	for k, v := range s.pending {
		pending[k] = v
	}
	s.mu.RUnlock()

	values := map[string]string{
		NameKey:          current.Name,
		PhoneKey:         current.Phone,
		AuthenticatedKey: "true",
	}
	var errs error
	for key, queued := range pending {
		var err error
		switch queued.action {
		case keyWrite:
			err = state.SetRaw(ctx, s.deps, key, values[key])
		case keyRemove:
			err = state.Remove(ctx, s.deps, key)
		}
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		s.mu.Lock()
		if s.pending[key] == queued {
			delete(s.pending, key)
		}
		s.mu.Unlock()
	}
	return errs
}

func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pending) > 0
}

// SetUser signs the customer in.
func (s *Store) SetUser(name, phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = State{Name: name, Phone: phone, IsAuthenticated: true}
	s.queue(keyWrite, NameKey, PhoneKey, AuthenticatedKey)
}

func (s *Store) UpdateName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Name = name
	s.queue(keyWrite, NameKey)
}

func (s *Store) UpdatePhone(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Phone = phone
	s.queue(keyWrite, PhoneKey)
}

// Logout clears the user and removes all three keys on save.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = State{}
	s.queue(keyRemove, NameKey, PhoneKey, AuthenticatedKey)
}

// queue must be called with mu held. A save only settles a key whose
// pending entry still carries the version it wrote.
func (s *Store) queue(action keyAction, keys ...string) {
	s.rev.Touch()
	for _, key := range keys {
		s.pending[key] = pendingKey{action: action, version: s.rev.Current()}
	}
}

func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) DisplayName() string {
	return s.Current().DisplayName()
}
