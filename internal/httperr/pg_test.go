package httperr

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgresClassification(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("create appointment: %w", &pgconn.PgError{Code: "23505"})

	if !IsUniqueViolation(wrapped) {
		t.Fatalf("expected wrapped 23505 to be a unique violation")
	}
	if IsExclusionConflict(wrapped) {
		t.Fatalf("23505 must not be reported as an exclusion conflict")
	}
	if !IsExclusionConflict(&pgconn.PgError{Code: "23P01"}) {
		t.Fatalf("expected 23P01 to be an exclusion conflict")
	}
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("expected 23503 to be a foreign key violation")
	}
	if IsUniqueViolation(fmt.Errorf("plain error")) {
		t.Fatalf("plain errors carry no SQLSTATE")
	}
}

func TestBusinessCodes(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("book: %w", ErrBusiness("time_conflict"))

	if !IsBusiness(err, "time_conflict") {
		t.Fatalf("expected wrapped business error to match its code")
	}
	if IsBusiness(err, "phone_required") {
		t.Fatalf("different code must not match")
	}
	if got := CodeOf(err); got != "time_conflict" {
		t.Fatalf("CodeOf = %q, want time_conflict", got)
	}
	if got := CodeOf(fmt.Errorf("boom")); got != "" {
		t.Fatalf("CodeOf(non-business) = %q, want empty", got)
	}
}
