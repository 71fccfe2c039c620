package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/scansafe/backend/internal/domain"
	"golang.org/x/time/rate"
)

// maxAttempts bounds retries for transient failures
const maxAttempts = 3

// Client handles communication with the Open Food Facts product API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
	debug       bool
}

// productResponse is the envelope of /api/v0/product/{code}.json
type productResponse struct {
	Status        int            `json:"status"`
	StatusVerbose string         `json:"status_verbose"`
	Product       domain.Product `json:"product"`
}

// NewClient creates a new Open Food Facts API client. The user agent is
// mandatory there; requests without one get throttled aggressively.
func NewClient(baseURL, userAgent string) *Client {
	// Open Food Facts allows 100 product queries per minute
	limiter := rate.NewLimiter(rate.Limit(100.0/60.0), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		userAgent:   userAgent,
		rateLimiter: limiter,
	}
}

// SetDebug enables or disables request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// GetProduct fetches one product record by barcode. The record is returned
// as-is: the external schema is sparse and owned by the remote service.
func (c *Client) GetProduct(ctx context.Context, barcode string) (domain.Product, error) {
	reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, barcode)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[OFF] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrProductNotFound
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			if c.debug {
				log.Printf("[OFF] API error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrProductAPIFailure, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("%w: status %d", domain.ErrProductAPIFailure, resp.StatusCode)
		}

		var productResp productResponse
		if err := json.Unmarshal(body, &productResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		// status 0 means the barcode is unknown to the database
		if productResp.Status == 0 || productResp.Product == nil {
			if c.debug {
				log.Printf("[OFF] Barcode %q not found: %s", barcode, productResp.StatusVerbose)
			}
			return nil, domain.ErrProductNotFound
		}

		if c.debug {
			log.Printf("[OFF] Fetched product %q (%d fields)", barcode, len(productResp.Product))
		}
		return productResp.Product, nil
	}

	return nil, lastErr
}

// doRequest executes an HTTP GET request with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProductAPIFailure, err)
	}

	return resp, nil
}

// exponentialBackoff returns the sleep duration before the next retry
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(250*(1<<(attempt-1))) * time.Millisecond
}
