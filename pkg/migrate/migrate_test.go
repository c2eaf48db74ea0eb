package migrate

import (
	"context"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/urbanexpress/storefront/pkg/config"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	if err := Validate(Migrations()); err != nil {
		t.Fatalf("embedded migrations invalid: %v", err)
	}
}

func TestValidateRejectsBadFiles(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"bad name":     {"create.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")}},
		"missing down": {"20260101000000_x.sql": {Data: []byte("-- +goose Up\n")}},
		"empty":        {},
	}
	for name, fsys := range cases {
		if err := Validate(fsys); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestUpCreatesStorageEntriesOnSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	applied, err := Up(ctx, sqlDB, config.DBDriverSQLite)
	if err != nil {
		t.Fatalf("up: %v", err)
	}
	if applied != 1 {
		t.Fatalf("expected 1 migration applied got %d", applied)
	}
	if !conn.Migrator().HasTable("storage_entries") {
		t.Fatalf("expected storage_entries table")
	}

	again, err := Up(ctx, sqlDB, config.DBDriverSQLite)
	if err != nil {
		t.Fatalf("second up: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected no pending migrations got %d", again)
	}

	statuses, err := Statuses(ctx, sqlDB, config.DBDriverSQLite)
	if err != nil {
		t.Fatalf("statuses: %v", err)
	}
	if len(statuses) != 1 || !statuses[0].Applied || statuses[0].Version != 20260301120000 {
		t.Fatalf("unexpected statuses %+v", statuses)
	}

	if err := Down(ctx, sqlDB, config.DBDriverSQLite); err != nil {
		t.Fatalf("down: %v", err)
	}
	if conn.Migrator().HasTable("storage_entries") {
		t.Fatalf("expected storage_entries dropped")
	}
}

func TestDialectForUnknownDriver(t *testing.T) {
	if _, err := DialectFor("oracle"); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}
