package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		exit      int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, exit: 2, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, exit: 3, publicMsg: "resource not found"},
		{code: CodeConflict, exit: 4, publicMsg: "conflict detected"},
		{code: CodeStateConflict, exit: 4, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeInternal, exit: 1, publicMsg: "internal error", retryable: true},
		{code: CodeDependency, exit: 5, publicMsg: "storage backend unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.ExitCode != tt.exit {
			t.Fatalf("code %s expected exit %d got %d", tt.code, tt.exit, meta.ExitCode)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.ExitCode != 1 {
		t.Fatalf("expected internal exit code, got %d", meta.ExitCode)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "foo"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
	if wrapped.Error() != "CONFLICT: ctx: boom" {
		t.Fatalf("unexpected message %q", wrapped.Error())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeNotFound, "no order"))
	if got := As(err); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
	if CodeOf(stdErrors.New("plain")) != CodeInternal {
		t.Fatalf("untyped errors should map to internal")
	}
}

func TestDumpExtractsPostgresDetails(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "storage_entries_pkey", TableName: "storage_entries", Message: "duplicate key value"}
	dump := Dump(Wrap(CodeDependency, pgErr, "save admin_orders"))
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", dump.Code)
	}
	if dump.PGCode != "23505" || dump.PGConstraint != "storage_entries_pkey" {
		t.Fatalf("unexpected pg details %+v", dump)
	}
	fields := dump.Fields()
	if fields["pg_table"] != "storage_entries" {
		t.Fatalf("expected pg_table field, got %v", fields)
	}

	pqDump := Dump(fmt.Errorf("write: %w", &pq.Error{Code: "42P01", Message: "relation does not exist"}))
	if pqDump.PGCode != "42P01" {
		t.Fatalf("expected lib/pq code, got %+v", pqDump)
	}
	if len(pqDump.Chain) != 2 {
		t.Fatalf("expected two chain entries, got %v", pqDump.Chain)
	}
}
