package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"jobsink/internal/model"
)

// SQLiteStore persists normalized job records, one table per board.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and verifies
// the connection. Destination tables are created lazily by EnsureTable.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// EnsureTable creates the board's destination table if it does not exist.
// A no-op when the table is already present.
func (s *SQLiteStore) EnsureTable(ctx context.Context, spec model.TableSpec) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		unique_job_id TEXT PRIMARY KEY,
		api_id        TEXT,
		date_posted   DATETIME,
		company       TEXT,
		position      TEXT,
		location      TEXT,
		%s            TEXT,
		salary_min    INTEGER,
		salary_max    INTEGER,
		url           TEXT
	)`, spec.Name, spec.LabelColumn)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating table %s: %w", spec.Name, err)
	}
	return nil
}

// Upsert merges all records into the board's table as one batched statement
// inside a transaction: rows whose unique_job_id already exists have every
// non-key column overwritten, new ids are inserted. The batch either applies
// fully or rolls back. An empty batch is a no-op.
//
// Records carrying the same key within one batch are applied in order, so
// the later record wins.
func (s *SQLiteStore) Upsert(ctx context.Context, spec model.TableSpec, records []model.Record) error {
	if len(records) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(records))
	args := make([]any, 0, len(records)*10)
	for _, r := range records {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			r.Key,
			nullString(r.ProviderID),
			nullTime(r.DatePosted),
			nullString(r.Company),
			nullString(r.Position),
			nullString(r.Location),
			nullString(r.Label),
			r.SalaryMin,
			r.SalaryMax,
			nullString(r.URL),
		)
	}

	query := fmt.Sprintf(`INSERT INTO %s
		(unique_job_id, api_id, date_posted, company, position, location, %s, salary_min, salary_max, url)
		VALUES %s
		ON CONFLICT(unique_job_id) DO UPDATE SET
			api_id      = excluded.api_id,
			date_posted = excluded.date_posted,
			company     = excluded.company,
			position    = excluded.position,
			location    = excluded.location,
			%s          = excluded.%s,
			salary_min  = excluded.salary_min,
			salary_max  = excluded.salary_max,
			url         = excluded.url`,
		spec.Name, spec.LabelColumn, strings.Join(placeholders, ", "),
		spec.LabelColumn, spec.LabelColumn)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning upsert into %s: %w", spec.Name, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tx.Rollback()
		return fmt.Errorf("upserting %d rows into %s: %w", len(records), spec.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert into %s: %w", spec.Name, err)
	}
	return nil
}

// Count returns the number of rows in the board's table, or 0 if the table
// has not been created yet.
func (s *SQLiteStore) Count(ctx context.Context, spec model.TableSpec) (int, error) {
	exists, err := s.tableExists(ctx, spec.Name)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	var count int
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", spec.Name)).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting rows in %s: %w", spec.Name, err)
	}
	return count, nil
}

// List returns up to limit records from the board's table, most recently
// posted first (null dates last). An absent table yields an empty slice.
func (s *SQLiteStore) List(ctx context.Context, spec model.TableSpec, limit int) ([]model.Record, error) {
	exists, err := s.tableExists(ctx, spec.Name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT unique_job_id, api_id, date_posted, company, position, location, %s, salary_min, salary_max, url
		FROM %s
		ORDER BY date_posted IS NULL, date_posted DESC
		LIMIT ?`, spec.LabelColumn, spec.Name)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing rows in %s: %w", spec.Name, err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var (
			r          model.Record
			providerID sql.NullString
			datePosted sql.NullString
			company    sql.NullString
			position   sql.NullString
			location   sql.NullString
			label      sql.NullString
			u          sql.NullString
		)
		if err := rows.Scan(&r.Key, &providerID, &datePosted, &company, &position, &location, &label, &r.SalaryMin, &r.SalaryMax, &u); err != nil {
			return nil, fmt.Errorf("scanning row in %s: %w", spec.Name, err)
		}
		r.ProviderID = providerID.String
		r.Company = company.String
		r.Position = position.String
		r.Location = location.String
		r.Label = label.String
		r.URL = u.String
		if datePosted.Valid {
			if t, err := time.Parse(time.RFC3339, datePosted.String); err == nil {
				t = t.UTC()
				r.DatePosted = &t
			}
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) tableExists(ctx context.Context, name string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&n)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking for table %s: %w", name, err)
	}
	return true, nil
}

// nullString converts the empty string — the normalizers' absent-field
// marker — into SQL NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullTime binds a nullable timestamp as an RFC 3339 string, or NULL.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
