package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/scansafe/backend/internal/domain"
)

// Client calls the remote analysis service. Its warnings are opaque
// strings; the scan service merges them with locally computed ones and
// tolerates any failure here.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// analyzeRequest mirrors the payload the analysis service expects.
type analyzeRequest struct {
	Product domain.Product `json:"product"`
	Profile profilePayload `json:"profile"`
}

type profilePayload struct {
	ID        string   `json:"id"`
	Allergies []string `json:"allergies"`
	Diseases  []string `json:"diseases"`
}

type analyzeResponse struct {
	Warnings []string `json:"warnings"`
}

// NewClient creates a new analysis service client
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Analyze submits the product and profile for server-side analysis and
// returns the resulting warning strings.
func (c *Client) Analyze(ctx context.Context, product domain.Product, userID string, allergies []string) ([]string, error) {
	if allergies == nil {
		allergies = []string{}
	}
	payload, err := json.Marshal(analyzeRequest{
		Product: product,
		Profile: profilePayload{
			ID:        userID,
			Allergies: allergies,
			Diseases:  []string{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAnalyzerFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrAnalyzerFailure, resp.StatusCode, string(body))
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Warnings, nil
}
