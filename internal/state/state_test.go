package state_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/urbanexpress/storefront/internal/state"
	"github.com/urbanexpress/storefront/internal/state/statetest"
	pkgerrors "github.com/urbanexpress/storefront/pkg/errors"
	"github.com/urbanexpress/storefront/pkg/metrics"
)

type doc struct {
	Name string `json:"name"`
}

func defaultDocs() []doc { return []doc{{Name: "default"}} }

func loads(env *statetest.Env, t *testing.T, outcome string) float64 {
	return env.Counter(t, "storefront_state_loads_total", map[string]string{"key": "docs", "outcome": outcome})
}

func TestLoadJSONMissingKeyUsesDefault(t *testing.T) {
	env := statetest.NewEnv(t)
	got, stored := state.LoadJSON(context.Background(), env.Deps, "docs", defaultDocs)
	if stored {
		t.Fatalf("expected missing key to report not stored")
	}
	if !reflect.DeepEqual(got, defaultDocs()) {
		t.Fatalf("expected defaults got %+v", got)
	}
	if n := loads(env, t, metrics.OutcomeDefault); n != 1 {
		t.Fatalf("expected 1 default load got %v", n)
	}
}

func TestLoadJSONDecodesStoredValue(t *testing.T) {
	env := statetest.NewEnv(t)
	env.Put(t, "docs", `[{"name":"saved"}]`)
	got, stored := state.LoadJSON(context.Background(), env.Deps, "docs", defaultDocs)
	if !stored {
		t.Fatalf("expected stored value")
	}
	if !reflect.DeepEqual(got, []doc{{Name: "saved"}}) {
		t.Fatalf("unexpected docs %+v", got)
	}
	if n := loads(env, t, metrics.OutcomeStored); n != 1 {
		t.Fatalf("expected 1 stored load got %v", n)
	}
}

func TestLoadJSONMalformedFallsBack(t *testing.T) {
	for _, raw := range []string{"{broken", "null", `{"name":"object not list"}`} {
		env := statetest.NewEnv(t)
		env.Put(t, "docs", raw)
		got, stored := state.LoadJSON(context.Background(), env.Deps, "docs", defaultDocs)
		if stored {
			t.Fatalf("%s: expected fallback", raw)
		}
		if !reflect.DeepEqual(got, defaultDocs()) {
			t.Fatalf("%s: expected defaults got %+v", raw, got)
		}
		if n := loads(env, t, metrics.OutcomeFallback); n != 1 {
			t.Fatalf("%s: expected 1 fallback load got %v", raw, n)
		}
	}
}

func TestLoadJSONReadFailureFallsBack(t *testing.T) {
	env := statetest.NewEnv(t)
	deps := env.Deps
	deps.Storage = statetest.FailingStorage{}
	got, stored := state.LoadJSON(context.Background(), deps, "docs", defaultDocs)
	if stored || !reflect.DeepEqual(got, defaultDocs()) {
		t.Fatalf("expected defaults after read failure got %+v stored=%v", got, stored)
	}
	if n := loads(env, t, metrics.OutcomeFallback); n != 1 {
		t.Fatalf("expected 1 fallback load got %v", n)
	}
	if n := loads(env, t, metrics.OutcomeDefault); n != 0 {
		t.Fatalf("expected no default loads got %v", n)
	}
}

func TestSaveJSONRoundTrip(t *testing.T) {
	env := statetest.NewEnv(t)
	if err := state.SaveJSON(context.Background(), env.Deps, "docs", []doc{{Name: "x"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, ok := env.Raw(t, "docs")
	if !ok || raw != `[{"name":"x"}]` {
		t.Fatalf("unexpected stored value %q", raw)
	}
	if n := env.Counter(t, "storefront_state_saves_total", map[string]string{"key": "docs"}); n != 1 {
		t.Fatalf("expected 1 save got %v", n)
	}
}

func TestSaveJSONWriteFailure(t *testing.T) {
	env := statetest.NewEnv(t)
	deps := env.Deps
	deps.Storage = statetest.FailingStorage{}
	err := state.SaveJSON(context.Background(), deps, "docs", []doc{})
	if err == nil {
		t.Fatalf("expected write failure")
	}
	if !errors.Is(err, statetest.ErrUnavailable) {
		t.Fatalf("expected wrapped storage error got %v", err)
	}
	if code := pkgerrors.CodeOf(err); code != pkgerrors.CodeDependency {
		t.Fatalf("expected %s got %s", pkgerrors.CodeDependency, code)
	}
	if n := env.Counter(t, "storefront_state_save_failures_total", map[string]string{"key": "docs"}); n != 1 {
		t.Fatalf("expected 1 save failure got %v", n)
	}
}

func TestRawHelpers(t *testing.T) {
	env := statetest.NewEnv(t)
	ctx := context.Background()
	if err := state.SetRaw(ctx, env.Deps, "userName", "Sara"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, ok := state.GetRaw(ctx, env.Deps, "userName"); !ok || got != "Sara" {
		t.Fatalf("expected Sara got %q ok=%v", got, ok)
	}

	if err := state.Remove(ctx, env.Deps, "userName"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := state.GetRaw(ctx, env.Deps, "userName"); ok {
		t.Fatalf("expected key removed")
	}

	failing := env.Deps
	failing.Storage = statetest.FailingStorage{}
	if _, ok := state.GetRaw(ctx, failing, "userName"); ok {
		t.Fatalf("expected read failure to report missing")
	}
}

func TestDepsValidate(t *testing.T) {
	_, err := state.Deps{}.Validate()
	if code := pkgerrors.CodeOf(err); code != pkgerrors.CodeValidation {
		t.Fatalf("expected %s got %s", pkgerrors.CodeValidation, code)
	}

	deps, err := state.Deps{Storage: statetest.FailingStorage{}}.Validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if deps.Logger == nil || deps.IDs == nil {
		t.Fatalf("expected logger and id defaults")
	}
	if deps.NewID().IsZero() {
		t.Fatalf("expected generated id")
	}
	if loc := deps.Clock().Location().String(); loc != "UTC" {
		t.Fatalf("expected UTC clock got %s", loc)
	}
}
