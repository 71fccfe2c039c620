package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/scansafe/backend/internal/domain"
)

// ProfileStore reads the raw free-text allergy declaration from a Supabase
// profiles table over the PostgREST API. Only the allergies column is ever
// selected; everything else about the profile is out of scope here.
type ProfileStore struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// profileRow is the single column we select from the profiles table.
type profileRow struct {
	Allergies string `json:"allergies"`
}

// NewProfileStore creates a new profile store client
func NewProfileStore(baseURL, apiKey string) *ProfileStore {
	return &ProfileStore{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// GetAllergyText returns the user's raw allergy text. A missing row yields
// ErrProfileNotFound; callers treat that the same as an explicit "None".
func (s *ProfileStore) GetAllergyText(ctx context.Context, userID string) (string, error) {
	params := url.Values{}
	params.Set("id", "eq."+userID)
	params.Set("select", "allergies")

	reqURL := fmt.Sprintf("%s/rest/v1/profiles?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("profile request returned status %d: %s", resp.StatusCode, string(body))
	}

	var rows []profileRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(rows) == 0 {
		return "", domain.ErrProfileNotFound
	}

	return rows[0].Allergies, nil
}
