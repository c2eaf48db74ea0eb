package cancellation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/urbanexpress/storefront/internal/state"
)

const (
	TimeKey    = "cancellationTimeSeconds"
	EnabledKey = "cancellationEnabled"

	DefaultSeconds = 60
)

// Presets maps admin shortcut names to grace periods in seconds.
var Presets = map[string]int{
	"30sec": 30,
	"60sec": 60,
	"90sec": 90,
	"2min":  120,
	"3min":  180,
	"5min":  300,
}

type WarningMessage struct {
	Ar string `json:"ar"`
	En string `json:"en"`
}

type Settings struct {
	AllowedTimeSeconds int            `json:"allowedTimeSeconds"`
	IsEnabled          bool           `json:"isEnabled"`
	WarningMessage     WarningMessage `json:"warningMessage"`
}

func warningFor(seconds int) WarningMessage {
	return WarningMessage{
		Ar: fmt.Sprintf("يمكن إلغاء الطلب خلال %d ثانية فقط من وقت تأكيد الطلب", seconds),
		En: fmt.Sprintf("Order cancellation is only allowed within %d seconds of placing the order", seconds),
	}
}

func newSettings(seconds int, enabled bool) Settings {
	return Settings{AllowedTimeSeconds: seconds, IsEnabled: enabled, WarningMessage: warningFor(seconds)}
}

func DefaultSettings() Settings {
	return newSettings(DefaultSeconds, true)
}

// GracePeriod is the allowed window as a duration.
func (s Settings) GracePeriod() time.Duration {
	return time.Duration(s.AllowedTimeSeconds) * time.Second
}

// CanCancel reports whether an order placed at placedAt may still be
// cancelled at now.
func (s Settings) CanCancel(placedAt, now time.Time) bool {
	return s.IsEnabled && now.Sub(placedAt) <= s.GracePeriod()
}

// Remaining is how long cancellation stays possible, never negative.
func (s Settings) Remaining(placedAt, now time.Time) time.Duration {
	if !s.IsEnabled {
		return 0
	}
	left := s.GracePeriod() - now.Sub(placedAt)
	if left < 0 {
		return 0
	}
	return left
}

type keyAction int

const (
	keyUnchanged keyAction = iota
	keyWrite
	keyRemove
)

// keyOp is the queued action for one key and the revision that queued it.
type keyOp struct {
	action  keyAction
	version uint64
}

// Store keeps the grace-period settings. Both values are stored as raw
// strings under their own keys.
type Store struct {
	deps state.Deps

	mu       sync.RWMutex
	settings Settings
	rev      state.Revision
	timeOp   keyOp
	enableOp keyOp
}

func NewStore(deps state.Deps) (*Store, error) {
	deps, err := deps.Validate()
	if err != nil {
		return nil, err
	}
	return &Store{deps: deps, settings: DefaultSettings()}, nil
}

// Load applies the stored values when either key is present.
func (s *Store) Load(ctx context.Context) {
	rawTime, timeOK := state.GetRaw(ctx, s.deps, TimeKey)
	rawEnabled, enabledOK := state.GetRaw(ctx, s.deps, EnabledKey)

	settings := DefaultSettings()
	if (timeOK && rawTime != "") || enabledOK {
		seconds := DefaultSeconds
		if timeOK && rawTime != "" {
			parsed, err := leadingInt(rawTime)
			if err != nil || parsed < 0 {
				logCtx := s.deps.Logger.WithField(s.deps.Logger.WithStorageKey(ctx, TimeKey), "value", rawTime)
				s.deps.Logger.Warn(logCtx, "invalid cancellation time, using default")
			} else {
				seconds = parsed
			}
		}
		enabled := true
		if enabledOK {
			enabled = rawEnabled == "true"
		}
		settings = newSettings(seconds, enabled)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.rev.Reset(true)
	s.timeOp = keyOp{}
	s.enableOp = keyOp{}
}

func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	settings, timeOp, enableOp := s.settings, s.timeOp, s.enableOp
	s.mu.RUnlock()

	var errs error
	if err := s.apply(ctx, TimeKey, timeOp, strconv.Itoa(settings.AllowedTimeSeconds)); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		s.settle(&s.timeOp, timeOp)
	}
	if err := s.apply(ctx, EnabledKey, enableOp, strconv.FormatBool(settings.IsEnabled)); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		s.settle(&s.enableOp, enableOp)
	}
	return errs
}

func (s *Store) apply(ctx context.Context, key string, op keyOp, value string) error {
	switch op.action {
	case keyWrite:
		return state.SetRaw(ctx, s.deps, key, value)
	case keyRemove:
		return state.Remove(ctx, s.deps, key)
	}
	return nil
}

// settle clears op unless a mutation requeued it while saving.
func (s *Store) settle(op *keyOp, saved keyOp) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if *op == saved {
		*op = keyOp{}
	}
}

// queue must be called with mu held.
func (s *Store) queue(op *keyOp, action keyAction) {
	s.rev.Touch()
	*op = keyOp{action: action, version: s.rev.Current()}
}

func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeOp.action != keyUnchanged || s.enableOp.action != keyUnchanged
}

// SetCancellationTime updates the grace period and its warning messages.
func (s *Store) SetCancellationTime(seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = newSettings(seconds, s.settings.IsEnabled)
	s.queue(&s.timeOp, keyWrite)
}

func (s *Store) ToggleCancellation(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.IsEnabled = enabled
	s.queue(&s.enableOp, keyWrite)
}

// SetPresetTime applies a named preset. Unknown names are ignored.
func (s *Store) SetPresetTime(preset string) bool {
	seconds, ok := Presets[preset]
	if !ok {
		return false
	}
	s.SetCancellationTime(seconds)
	return true
}

// ResetToDefaults restores defaults and removes both keys on save.
func (s *Store) ResetToDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = DefaultSettings()
	s.queue(&s.timeOp, keyRemove)
	s.queue(&s.enableOp, keyRemove)
}

func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Store) CanCancel(placedAt, now time.Time) bool {
	return s.Settings().CanCancel(placedAt, now)
}

func (s *Store) Remaining(placedAt, now time.Time) time.Duration {
	return s.Settings().Remaining(placedAt, now)
}

// leadingInt reads the optionally signed integer at the start of raw and
// ignores anything after it, so "90s" is 90.
func leadingInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(raw[:end])
}
