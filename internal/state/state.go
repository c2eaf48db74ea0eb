package state

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	pkgerrors "github.com/urbanexpress/storefront/pkg/errors"
	"github.com/urbanexpress/storefront/pkg/idgen"
	"github.com/urbanexpress/storefront/pkg/logger"
	"github.com/urbanexpress/storefront/pkg/metrics"
	"github.com/urbanexpress/storefront/pkg/storage"
	"github.com/urbanexpress/storefront/pkg/types"
)

// Deps is what every store needs besides its own data.
type Deps struct {
	Storage storage.Storage
	Logger  *logger.Logger
	Metrics *metrics.StateMetrics
	IDs     idgen.Generator
	Now     func() time.Time
}

// Validate fills optional dependencies and rejects a missing storage.
func (d Deps) Validate() (Deps, error) {
	if d.Storage == nil {
		return d, pkgerrors.New(pkgerrors.CodeValidation, "storage is required")
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.IDs == nil {
		d.IDs = idgen.UUID{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d, nil
}

func (d Deps) NewID() types.ID {
	return d.IDs.NewID()
}

// Clock returns the current time in UTC.
func (d Deps) Clock() time.Time {
	return d.Now().UTC()
}

// LoadJSON reads key and decodes it into a T. A missing or blank key, a
// malformed document or a read failure all yield fallback(); the second
// return reports whether the stored document was used.
func LoadJSON[T any](ctx context.Context, d Deps, key string, fallback func() T) (T, bool) {
	ctx = d.Logger.WithStorageKey(ctx, key)

	raw, ok, err := d.Storage.GetItem(ctx, key)
	if err != nil {
		d.readFailed(ctx, key, err)
		d.Metrics.IncLoad(key, metrics.OutcomeFallback)
		return fallback(), false
	}
	if !ok || strings.TrimSpace(raw) == "" {
		d.Metrics.IncLoad(key, metrics.OutcomeDefault)
		return fallback(), false
	}
	if strings.TrimSpace(raw) == "null" {
		d.Logger.Warn(ctx, "stored document is null, using defaults")
		d.Metrics.IncLoad(key, metrics.OutcomeFallback)
		return fallback(), false
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		d.Logger.WarnErr(ctx, "failed to parse stored document, using defaults", err)
		d.Metrics.IncLoad(key, metrics.OutcomeFallback)
		return fallback(), false
	}
	d.Metrics.IncLoad(key, metrics.OutcomeStored)
	return value, true
}

// SaveJSON encodes value and writes it under key.
func SaveJSON(ctx context.Context, d Deps, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		d.Metrics.IncSaveFailure(key)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode "+key)
	}
	return SetRaw(ctx, d, key, string(payload))
}

// GetRaw reads key as an opaque string. Read failures are logged and
// reported as a missing key.
func GetRaw(ctx context.Context, d Deps, key string) (string, bool) {
	raw, ok, err := d.Storage.GetItem(ctx, key)
	if err != nil {
		d.readFailed(ctx, key, err)
		return "", false
	}
	return raw, ok
}

// SetRaw writes an opaque string under key.
func SetRaw(ctx context.Context, d Deps, key, value string) error {
	if err := d.Storage.SetItem(ctx, key, value); err != nil {
		return d.writeFailed(ctx, key, err)
	}
	d.Metrics.IncSave(key)
	return nil
}

// Remove deletes key.
func Remove(ctx context.Context, d Deps, key string) error {
	if err := d.Storage.RemoveItem(ctx, key); err != nil {
		return d.writeFailed(ctx, key, err)
	}
	d.Metrics.IncSave(key)
	return nil
}

func (d Deps) readFailed(ctx context.Context, key string, err error) {
	ctx = d.Logger.WithFields(d.Logger.WithStorageKey(ctx, key), pkgerrors.Dump(err).Fields())
	d.Logger.WarnErr(ctx, "storage read failed, using defaults", err)
}

func (d Deps) writeFailed(ctx context.Context, key string, err error) error {
	d.Metrics.IncSaveFailure(key)
	wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write "+key)
	ctx = d.Logger.WithFields(d.Logger.WithStorageKey(ctx, key), pkgerrors.Dump(wrapped).Fields())
	d.Logger.Error(ctx, "storage write failed", err)
	return wrapped
}

// NonNil returns items, or an empty slice when items is nil, so lists
// always encode as [] rather than null.
func NonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
