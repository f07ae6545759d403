package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"jobsink/internal/model"
)

const (
	joobleBaseURL = "https://jooble.org/api/"
	joobleTimeout = 15 * time.Second
)

// joobleRequest is the fixed search body sent to the Jooble API.
type joobleRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
}

var joobleSearch = joobleRequest{
	Keywords: "data engineer, python developer, software engineer, IT",
	Location: "United States, India",
}

// joobleJob represents a single listing in the Jooble search response.
// The salary field is free text ("$50,000 - $70,000 a year"), not a number.
type joobleJob struct {
	ID       json.Number `json:"id"`
	Updated  string      `json:"updated"`
	Title    string      `json:"title"`
	Company  string      `json:"company"`
	Location string      `json:"location"`
	Snippet  string      `json:"snippet"`
	Salary   string      `json:"salary"`
	Link     string      `json:"link"`
}

// joobleResponse is the top-level Jooble search API response.
type joobleResponse struct {
	Jobs []joobleJob `json:"jobs"`
}

// Jooble fetches listings from the Jooble search API (POST, key embedded in
// the URL path). The leading numeric token of the free-text salary string
// becomes both salary_min and salary_max, clamped to a 32-bit bound.
type Jooble struct {
	apiKey string
	client *http.Client
}

// NewJooble creates a Jooble provider. A nil client gets a default one
// with the board's 15s timeout.
func NewJooble(apiKey string, client *http.Client) *Jooble {
	if client == nil {
		client = &http.Client{Timeout: joobleTimeout}
	}
	return &Jooble{apiKey: apiKey, client: client}
}

func (j *Jooble) Name() string { return "jooble" }

func (j *Jooble) Table() model.TableSpec {
	return model.TableSpec{Name: "jooble_jobs", LabelColumn: "tags"}
}

// Fetch posts the fixed search body and normalizes the listings into Records.
func (j *Jooble) Fetch(ctx context.Context) ([]model.Record, error) {
	body, err := json.Marshal(joobleSearch)
	if err != nil {
		return nil, fmt.Errorf("jooble fetch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joobleBaseURL+j.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("jooble fetch: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jooble fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jooble fetch: unexpected status %d", resp.StatusCode)
	}

	var apiResp joobleResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("jooble fetch: %w", err)
	}

	records := make([]model.Record, 0, len(apiResp.Jobs))
	for _, job := range apiResp.Jobs {
		salary := extractSalary(job.Salary, math.MaxInt32)
		records = append(records, model.Record{
			ProviderID: job.ID.String(),
			DatePosted: parseDate(job.Updated),
			Company:    job.Company,
			Position:   job.Title,
			Location:   job.Location,
			Label:      job.Snippet,
			SalaryMin:  salary,
			SalaryMax:  salary,
			URL:        job.Link,
		})
	}

	return records, nil
}
