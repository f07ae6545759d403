// Package identity derives the surrogate key that decides row identity
// during upsert.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"jobsink/internal/model"
)

// Key returns the surrogate key for a listing: the hex-encoded SHA-256 of
// "company-position-location". The inputs are hashed as-is — no case,
// whitespace, or unicode normalization — so two listings differing only in
// whitespace get distinct keys, and two distinct listings sharing all three
// fields collide and merge on upsert.
func Key(company, position, location string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s-%s-%s", company, position, location)))
	return hex.EncodeToString(sum[:])
}

// Assign fills in the Key field of every record in place.
func Assign(records []model.Record) {
	for i := range records {
		records[i].Key = Key(records[i].Company, records[i].Position, records[i].Location)
	}
}
