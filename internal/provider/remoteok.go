package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"jobsink/internal/model"
)

const (
	remoteokBaseURL = "https://remoteok.com/api"
	remoteokTimeout = 10 * time.Second
)

// remoteokJob represents a single listing in the RemoteOK feed. The feed's
// first element is a legal-notice object, not a listing; it decodes into a
// zero value here and is skipped by Fetch.
type remoteokJob struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Company   string   `json:"company"`
	Position  string   `json:"position"`
	Location  string   `json:"location"`
	Tags      []string `json:"tags"`
	SalaryMin float64  `json:"salary_min"`
	SalaryMax float64  `json:"salary_max"`
	URL       string   `json:"url"`
}

// RemoteOK fetches listings from the public RemoteOK feed (GET, no auth).
// Salaries are clamped to a 32-bit bound.
type RemoteOK struct {
	client *http.Client
}

// NewRemoteOK creates a RemoteOK provider. A nil client gets a default one
// with the feed's 10s timeout.
func NewRemoteOK(client *http.Client) *RemoteOK {
	if client == nil {
		client = &http.Client{Timeout: remoteokTimeout}
	}
	return &RemoteOK{client: client}
}

func (r *RemoteOK) Name() string { return "remoteok" }

func (r *RemoteOK) Table() model.TableSpec {
	return model.TableSpec{Name: "remoteok_jobs", LabelColumn: "tags"}
}

// Fetch retrieves the feed, drops the leading metadata element, and
// normalizes the rest into Records.
func (r *RemoteOK) Fetch(ctx context.Context) ([]model.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteokBaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remoteok fetch: unexpected status %d", resp.StatusCode)
	}

	var feed []remoteokJob
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}

	// First element is metadata; a feed without at least one listing after
	// it is an unexpected shape.
	if len(feed) < 2 {
		return nil, fmt.Errorf("remoteok fetch: unexpected feed shape (%d elements)", len(feed))
	}

	listings := feed[1:]
	records := make([]model.Record, 0, len(listings))
	for _, job := range listings {
		records = append(records, model.Record{
			ProviderID: job.ID,
			DatePosted: parseDate(job.Date),
			Company:    job.Company,
			Position:   job.Position,
			Location:   job.Location,
			Label:      strings.Join(job.Tags, ", "),
			SalaryMin:  clampSalary(job.SalaryMin, math.MaxInt32),
			SalaryMax:  clampSalary(job.SalaryMax, math.MaxInt32),
			URL:        job.URL,
		})
	}

	return records, nil
}
