package provider

import "time"

// Date layouts seen across the three boards: RFC 3339 with and without
// fractional seconds (Adzuna, RemoteOK) and zone-less timestamps with up to
// seven fractional digits (Jooble).
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate parses a board's date string into a UTC timestamp. Missing or
// unparseable input yields nil rather than an error; the record proceeds
// with a null date.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
