package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"jobsink/internal/identity"
	"jobsink/internal/model"
)

var testSpec = model.TableSpec{Name: "remoteok_jobs", LabelColumn: "tags"}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(company, position, location string) model.Record {
	posted := time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC)
	r := model.Record{
		ProviderID: "123",
		DatePosted: &posted,
		Company:    company,
		Position:   position,
		Location:   location,
		Label:      "python",
		SalaryMin:  0,
		SalaryMax:  0,
		URL:        "http://x",
	}
	r.Key = identity.Key(company, position, location)
	return r
}

func TestEnsureTable_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureTable(ctx, testSpec); err != nil {
		t.Fatalf("first EnsureTable: %v", err)
	}
	if err := s.EnsureTable(ctx, testSpec); err != nil {
		t.Fatalf("second EnsureTable: %v", err)
	}
}

func TestUpsert_InsertThenUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureTable(ctx, testSpec); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}

	rec := testRecord("Acme", "Engineer", "Remote")
	if err := s.Upsert(ctx, testSpec, []model.Record{rec}); err != nil {
		t.Fatalf("insert upsert: %v", err)
	}

	count, err := s.Count(ctx, testSpec)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}

	// Same key, changed non-key columns: the row is overwritten, not duplicated.
	rec.URL = "http://y"
	rec.Label = "python, sql"
	if err := s.Upsert(ctx, testSpec, []model.Record{rec}); err != nil {
		t.Fatalf("update upsert: %v", err)
	}

	count, err = s.Count(ctx, testSpec)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row after re-upsert, got %d", count)
	}

	rows, err := s.List(ctx, testSpec, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if rows[0].URL != "http://y" || rows[0].Label != "python, sql" {
		t.Errorf("expected overwritten columns, got %+v", rows[0])
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureTable(ctx, testSpec); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}

	batch := []model.Record{
		testRecord("Acme", "Engineer", "Remote"),
		testRecord("Globex", "Analyst", "NYC"),
	}
	for i := 0; i < 2; i++ {
		if err := s.Upsert(ctx, testSpec, batch); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}

	count, err := s.Count(ctx, testSpec)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows after running the batch twice, got %d", count)
	}
}

func TestUpsert_DuplicateKeysInBatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureTable(ctx, testSpec); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}

	// Two distinct listings sharing company/position/location share a key;
	// the later one wins.
	first := testRecord("Acme", "Engineer", "Remote")
	first.URL = "http://first"
	second := testRecord("Acme", "Engineer", "Remote")
	second.URL = "http://second"

	if err := s.Upsert(ctx, testSpec, []model.Record{first, second}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rows, err := s.List(ctx, testSpec, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected colliding records to merge into 1 row, got %d", len(rows))
	}
	if rows[0].URL != "http://second" {
		t.Errorf("expected later record to win, got %q", rows[0].URL)
	}
}

func TestUpsert_EmptyBatch(t *testing.T) {
	s := newTestStore(t)

	// No table needed: an empty batch never touches the database.
	if err := s.Upsert(context.Background(), testSpec, nil); err != nil {
		t.Fatalf("empty upsert: %v", err)
	}
}

func TestUpsert_NullColumns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureTable(ctx, testSpec); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}

	rec := model.Record{
		Key:      identity.Key("", "Engineer", ""),
		Position: "Engineer",
	}
	if err := s.Upsert(ctx, testSpec, []model.Record{rec}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rows, err := s.List(ctx, testSpec, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := rows[0]
	if got.Company != "" || got.Location != "" || got.Label != "" || got.ProviderID != "" || got.URL != "" {
		t.Errorf("expected NULL columns to come back empty, got %+v", got)
	}
	if got.DatePosted != nil {
		t.Errorf("expected nil date, got %v", got.DatePosted)
	}
	if got.SalaryMin != 0 || got.SalaryMax != 0 {
		t.Errorf("expected zero salaries, got %d/%d", got.SalaryMin, got.SalaryMax)
	}
}

func TestList_DateRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureTable(ctx, testSpec); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}

	rec := testRecord("Acme", "Engineer", "Remote")
	if err := s.Upsert(ctx, testSpec, []model.Record{rec}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rows, err := s.List(ctx, testSpec, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if rows[0].DatePosted == nil {
		t.Fatal("expected date to round-trip")
	}
	if !rows[0].DatePosted.Equal(*rec.DatePosted) {
		t.Errorf("expected %v, got %v", rec.DatePosted, rows[0].DatePosted)
	}
}

func TestCount_MissingTable(t *testing.T) {
	s := newTestStore(t)

	count, err := s.Count(context.Background(), model.TableSpec{Name: "adzuna_jobs", LabelColumn: "category"})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 for a table that does not exist, got %d", count)
	}
}

func TestList_MissingTable(t *testing.T) {
	s := newTestStore(t)

	rows, err := s.List(context.Background(), model.TableSpec{Name: "jooble_jobs", LabelColumn: "tags"}, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
