package db

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestParseDomainIPIDRejectsGarbage(t *testing.T) {
	_, err := parseDomainIPID("not-a-uuid")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUUIDRoundTrip(t *testing.T) {
	const id = "0b8f2f52-7f3e-4a3c-9d43-6f0c2f3b1a9e"
	parsed, err := parseUUID(id)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := uuidString(parsed); got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestParseDeviceIDNil(t *testing.T) {
	parsed, err := parseDeviceID(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.Valid {
		t.Fatal("expected NULL uuid for nil device")
	}
}

func TestIsUniqueViolationMatchesConstraint(t *testing.T) {
	err := fmt.Errorf("copy: %w", &pgconn.PgError{Code: "23505", ConstraintName: "unique_ip"})
	if !isUniqueViolation(err, "unique_ip") {
		t.Fatal("expected unique_ip violation")
	}
	if isUniqueViolation(err, "unique_cidr") {
		t.Fatal("expected constraint name to be checked")
	}
	if isUniqueViolation(errors.New("boom"), "unique_ip") {
		t.Fatal("expected plain errors to be ignored")
	}
}

func TestIsNoRows(t *testing.T) {
	if !isNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)) {
		t.Fatal("expected wrapped ErrNoRows to match")
	}
}

func TestLatencyMsConversion(t *testing.T) {
	if latencyMs(nil) != nil {
		t.Fatal("expected nil latency to stay nil")
	}
	d := 1500 * time.Microsecond
	ms := latencyMs(&d)
	if ms == nil || *ms != 1.5 {
		t.Fatalf("expected 1.5ms, got %v", ms)
	}
}

func TestNullableHelpers(t *testing.T) {
	if nullableText("") != nil {
		t.Fatal("expected empty text to be NULL")
	}
	if derefText(nullableText("x")) != "x" {
		t.Fatal("expected text round trip")
	}
	if got := nonNil(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestEmbeddedMigrationsAreOrdered(t *testing.T) {
	files, err := fs.Glob(embedMigrations, "migrations/*.sql")
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	want := []string{
		"migrations/00001_create_subnets.sql",
		"migrations/00002_create_devices.sql",
		"migrations/00003_create_ip_addresses.sql",
		"migrations/00004_create_ping_history.sql",
	}
	if len(files) != len(want) {
		t.Fatalf("expected %d migrations, got %v", len(want), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("unexpected migration order: %v", files)
		}
	}
}
