package model

import (
	"context"
	"time"
)

// Record is the normalized form of one job listing, common to every board.
type Record struct {
	Key        string     // surrogate key, hex SHA-256 of company-position-location
	ProviderID string     // the board's own listing id, "" when absent
	DatePosted *time.Time // nil when the board's date string is missing or unparseable
	Company    string
	Position   string // job title
	Location   string
	Label      string // category (Adzuna) or comma-joined tags / snippet (Jooble, RemoteOK)
	SalaryMin  int64  // always >= 0; 0 when absent or unparseable
	SalaryMax  int64  // always >= 0; 0 when absent or unparseable
	URL        string
}

// TableSpec describes the destination table for one board. Boards differ
// only in table name and in whether the label column is called "category"
// or "tags".
type TableSpec struct {
	Name        string
	LabelColumn string
}

// Provider fetches listings from one job board and normalizes them into
// Records. Fetch does not assign surrogate keys; the pipeline does that.
type Provider interface {
	Name() string
	Table() TableSpec
	Fetch(ctx context.Context) ([]Record, error)
}

// RecordStore persists normalized records keyed by their surrogate key.
type RecordStore interface {
	// EnsureTable creates the destination table if it does not exist.
	// A no-op when the table is already present.
	EnsureTable(ctx context.Context, spec TableSpec) error
	// Upsert merges all records into the table in one atomic batch:
	// rows whose key already exists are overwritten, new keys inserted.
	Upsert(ctx context.Context, spec TableSpec, records []Record) error
}
