package migration

import (
	"database/sql"
	"io/fs"
	"testing"
	"time"

	"github.com/julianstephens/tracklit/migrations"
)

func setupSchema(t *testing.T) *sql.DB {
	t.Helper()
	db, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("failed to access sqlite migrations: %v", err)
	}
	if _, err := NewRunner(db, subFS, DriverSQLite).ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	_, err = db.Exec(`INSERT INTO trackers (id, name, emoji, color, created_at, updated_at)
		VALUES ('t1', 'Read', '📚', '#112233', '2024-01-01T00:00:00.000000000Z', '2024-01-01T00:00:00.000000000Z'),
		       ('t2', 'Run', '🏃', '#445566', '2024-01-01T00:00:00.000000000Z', '2024-01-01T00:00:00.000000000Z')`)
	if err != nil {
		t.Fatalf("failed to seed trackers: %v", err)
	}
	return db
}

func insertRecord(t *testing.T, db *sql.DB, id, trackerID, day, createdAt string) {
	t.Helper()
	if _, err := db.Exec("INSERT INTO completion_records (id, tracker_id, day, created_at) VALUES (?, ?, ?, ?)", id, trackerID, day, createdAt); err != nil {
		t.Fatalf("failed to insert record %s: %v", id, err)
	}
}

func daysFor(t *testing.T, db *sql.DB, trackerID string) map[string]string {
	t.Helper()
	rows, err := db.Query("SELECT id, day FROM completion_records WHERE tracker_id = ?", trackerID)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var id, day string
		if err := rows.Scan(&id, &day); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		out[id] = day
	}
	return out
}

func TestNormalizeDaysRewritesAndDeduplicates(t *testing.T) {
	db := setupSchema(t)

	insertRecord(t, db, "r1", "t1", "2024-01-05T08:00:00Z", "2024-01-05T08:00:00.000000000Z")
	insertRecord(t, db, "r2", "t1", "2024-01-05T21:30:00Z", "2024-01-05T21:30:00.000000000Z")
	insertRecord(t, db, "r3", "t1", "2024-01-06", "2024-01-06T09:00:00.000000000Z")
	insertRecord(t, db, "r4", "t1", "2024-01-06 10:00:00", "2024-01-06T10:00:00.000000000Z")
	insertRecord(t, db, "r5", "t2", "2024-01-05T12:00:00Z", "2024-01-05T12:00:00.000000000Z")
	insertRecord(t, db, "r6", "t2", "not a day", "2024-01-05T12:00:00.000000000Z")

	result, err := NormalizeDays(db, DriverSQLite, time.UTC)
	if err != nil {
		t.Fatalf("NormalizeDays failed: %v", err)
	}

	if result.Duplicates != 2 {
		t.Errorf("Duplicates = %d, want 2", result.Duplicates)
	}
	if result.Rewritten != 2 {
		t.Errorf("Rewritten = %d, want 2", result.Rewritten)
	}
	if len(result.Invalid) != 1 || result.Invalid[0] != "r6" {
		t.Errorf("Invalid = %v, want [r6]", result.Invalid)
	}

	t1 := daysFor(t, db, "t1")
	if len(t1) != 2 || t1["r1"] != "2024-01-05" || t1["r3"] != "2024-01-06" {
		t.Errorf("t1 records = %v", t1)
	}
	t2 := daysFor(t, db, "t2")
	if t2["r5"] != "2024-01-05" || t2["r6"] != "not a day" {
		t.Errorf("t2 records = %v", t2)
	}

	// A second pass finds nothing to do.
	again, err := NormalizeDays(db, DriverSQLite, time.UTC)
	if err != nil {
		t.Fatalf("second NormalizeDays failed: %v", err)
	}
	if again.Changed() {
		t.Errorf("expected idempotent pass, got %+v", again)
	}
}

func TestNormalizeDaysUsesLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone not available: %v", err)
	}
	db := setupSchema(t)

	// 03:00 UTC on the 5th is the evening of the 4th in New York.
	insertRecord(t, db, "r1", "t1", "2024-01-05T03:00:00Z", "2024-01-05T03:00:00.000000000Z")

	if _, err := NormalizeDays(db, DriverSQLite, ny); err != nil {
		t.Fatalf("NormalizeDays failed: %v", err)
	}
	if got := daysFor(t, db, "t1")["r1"]; got != "2024-01-04" {
		t.Errorf("day = %q, want 2024-01-04", got)
	}
}
