package provider

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRemoteOK_Fetch_SkipsMetadata(t *testing.T) {
	payload := `[
		{"legal": "API terms of service..."},
		{
			"id": "123",
			"date": "2026-08-17T12:00:00+00:00",
			"company": "Acme",
			"position": "Engineer",
			"location": "Remote",
			"tags": ["python"],
			"salary_min": null,
			"salary_max": null,
			"url": "http://x"
		}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	records, err := NewRemoteOK(testClient(srv)).Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record (metadata skipped), got %d", len(records))
	}

	r := records[0]
	if r.ProviderID != "123" {
		t.Errorf("expected id 123, got %q", r.ProviderID)
	}
	if r.Company != "Acme" || r.Position != "Engineer" || r.Location != "Remote" {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.Label != "python" {
		t.Errorf("expected joined tags, got %q", r.Label)
	}
	if r.SalaryMin != 0 || r.SalaryMax != 0 {
		t.Errorf("expected null salaries to default to 0, got %d/%d", r.SalaryMin, r.SalaryMax)
	}
	if r.URL != "http://x" {
		t.Errorf("unexpected url: %q", r.URL)
	}
	if r.DatePosted == nil || r.DatePosted.Hour() != 12 {
		t.Errorf("unexpected date: %v", r.DatePosted)
	}
}

func TestRemoteOK_Fetch_TagsJoinedAndClamped(t *testing.T) {
	payload := `[
		{"legal": "..."},
		{
			"id": "9",
			"company": "Globex",
			"position": "SRE",
			"location": "Worldwide",
			"tags": ["go", "devops", "sre"],
			"salary_min": 70000,
			"salary_max": 99999999999,
			"url": "https://remoteok.com/remote-jobs/9"
		}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	records, err := NewRemoteOK(testClient(srv)).Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := records[0]
	if r.Label != "go, devops, sre" {
		t.Errorf("expected comma-joined tags, got %q", r.Label)
	}
	if r.SalaryMin != 70000 {
		t.Errorf("expected 70000, got %d", r.SalaryMin)
	}
	if r.SalaryMax != math.MaxInt32 {
		t.Errorf("expected salary clamped to MaxInt32, got %d", r.SalaryMax)
	}
}

func TestRemoteOK_Fetch_UnexpectedShape(t *testing.T) {
	// A feed with only the metadata element has no listings to skip to.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"legal": "..."}]`))
	}))
	defer srv.Close()

	if _, err := NewRemoteOK(testClient(srv)).Fetch(context.Background()); err == nil {
		t.Fatal("expected error for single-element feed, got nil")
	}
}

func TestRemoteOK_Fetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := NewRemoteOK(testClient(srv)).Fetch(context.Background()); err == nil {
		t.Fatal("expected error for HTTP 429, got nil")
	}
}

func TestRemoteOK_Fetch_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"legal":`))
	}))
	defer srv.Close()

	if _, err := NewRemoteOK(testClient(srv)).Fetch(context.Background()); err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}
