// Package statetest provides deterministic dependencies for store tests.
package statetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/urbanexpress/storefront/internal/state"
	"github.com/urbanexpress/storefront/pkg/idgen"
	"github.com/urbanexpress/storefront/pkg/logger"
	"github.com/urbanexpress/storefront/pkg/metrics"
	"github.com/urbanexpress/storefront/pkg/storage"
)

// Epoch is the starting instant of every test Clock.
var Epoch = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: Epoch}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Env bundles the fakes behind a state.Deps.
type Env struct {
	Deps     state.Deps
	Memory   *storage.Memory
	Clock    *Clock
	Registry *prometheus.Registry
}

// NewEnv returns deps backed by in-memory storage, a sequence starting at
// 100, a fixed clock and a private metrics registry.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	mem := storage.NewMemory()
	clock := NewClock()
	reg := prometheus.NewRegistry()
	return &Env{
		Deps: state.Deps{
			Storage: mem,
			Logger:  logger.Nop(),
			Metrics: metrics.NewStateMetrics(reg),
			IDs:     idgen.NewSequence(100),
			Now:     clock.Now,
		},
		Memory:   mem,
		Clock:    clock,
		Registry: reg,
	}
}

// Put seeds a raw value.
func (e *Env) Put(t *testing.T, key, value string) {
	t.Helper()
	if err := e.Memory.SetItem(context.Background(), key, value); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

// Raw returns the stored value for key.
func (e *Env) Raw(t *testing.T, key string) (string, bool) {
	t.Helper()
	value, ok, err := e.Memory.GetItem(context.Background(), key)
	if err != nil {
		t.Fatalf("read %s: %v", key, err)
	}
	return value, ok
}

// Counter returns the value of a counter series, or 0 when absent.
func (e *Env) Counter(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	mfs, err := e.Registry.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if matchesLabels(metric.GetLabel(), labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if value, ok := want[pair.GetName()]; ok {
			if value != pair.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(want)
}

// ErrUnavailable is returned by FailingStorage.
var ErrUnavailable = errors.New("storage unavailable")

// FailingStorage fails every call.
type FailingStorage struct{}

func (FailingStorage) GetItem(context.Context, string) (string, bool, error) {
	return "", false, ErrUnavailable
}

func (FailingStorage) SetItem(context.Context, string, string) error { return ErrUnavailable }

func (FailingStorage) RemoveItem(context.Context, string) error { return ErrUnavailable }

// HookStorage wraps a Storage and runs OnSet before each write is applied,
// letting tests interleave mutations with an in-flight Save.
type HookStorage struct {
	storage.Storage
	OnSet func(key string)
}

func (h *HookStorage) SetItem(ctx context.Context, key, value string) error {
	if h.OnSet != nil {
		h.OnSet(key)
	}
	return h.Storage.SetItem(ctx, key, value)
}

// Once returns a hook that runs fn on the first write only.
func Once(fn func(key string)) func(string) {
	var once sync.Once
	return func(key string) {
		once.Do(func() { fn(key) })
	}
}
