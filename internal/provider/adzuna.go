package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobsink/internal/model"
)

const (
	adzunaBaseURL        = "http://api.adzuna.com/v1/api/jobs/in/search/1"
	adzunaQuery          = "IT or Data or AI"
	adzunaResultsPerPage = 50
	adzunaTimeout        = 15 * time.Second
)

// adzunaJob represents a single listing in the Adzuna search response.
type adzunaJob struct {
	ID          string         `json:"id"`
	Created     string         `json:"created"`
	Title       string         `json:"title"`
	Company     adzunaCompany  `json:"company"`
	Location    adzunaLocation `json:"location"`
	Category    adzunaCategory `json:"category"`
	SalaryMin   float64        `json:"salary_min"`
	SalaryMax   float64        `json:"salary_max"`
	RedirectURL string         `json:"redirect_url"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	Area []string `json:"area"`
}

type adzunaCategory struct {
	Label string `json:"label"`
}

// adzunaResponse is the top-level Adzuna search API response.
type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

// Adzuna fetches listings from the Adzuna search API (GET, query-string
// auth). Salaries are clamped to a 64-bit signed bound.
type Adzuna struct {
	appID  string
	appKey string
	client *http.Client
}

// NewAdzuna creates an Adzuna provider. A nil client gets a default one
// with the board's 15s timeout.
func NewAdzuna(appID, appKey string, client *http.Client) *Adzuna {
	if client == nil {
		client = &http.Client{Timeout: adzunaTimeout}
	}
	return &Adzuna{appID: appID, appKey: appKey, client: client}
}

func (a *Adzuna) Name() string { return "adzuna" }

func (a *Adzuna) Table() model.TableSpec {
	return model.TableSpec{Name: "adzuna_jobs", LabelColumn: "category"}
}

// Fetch retrieves one page of listings and normalizes them into Records.
func (a *Adzuna) Fetch(ctx context.Context) ([]model.Record, error) {
	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("results_per_page", fmt.Sprintf("%d", adzunaResultsPerPage))
	params.Set("what", adzunaQuery)
	params.Set("content-type", "application/json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, adzunaBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna fetch: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna fetch: unexpected status %d", resp.StatusCode)
	}

	var apiResp adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("adzuna fetch: %w", err)
	}

	records := make([]model.Record, 0, len(apiResp.Results))
	for _, j := range apiResp.Results {
		records = append(records, model.Record{
			ProviderID: j.ID,
			DatePosted: parseDate(j.Created),
			Company:    j.Company.DisplayName,
			Position:   j.Title,
			Location:   strings.Join(j.Location.Area, ", "),
			Label:      j.Category.Label,
			SalaryMin:  clampSalary(j.SalaryMin, math.MaxInt64),
			SalaryMax:  clampSalary(j.SalaryMax, math.MaxInt64),
			URL:        j.RedirectURL,
		})
	}

	return records, nil
}
