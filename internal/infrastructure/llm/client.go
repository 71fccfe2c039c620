package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/scansafe/backend/internal/domain"
)

// analysisPromptFormat asks the model for a short narrative assessment of
// an ingredient list.
const analysisPromptFormat = `Please analyze these ingredients and provide detailed information about them in about 10 lines. Focus on:

1. What these ingredients are commonly used for
2. Any potential health benefits or concerns
3. Whether they are natural or artificial
4. Any allergens or sensitivities they might cause
5. Nutritional value or impact
6. Which ingredients affect health and which are safe

Ingredients to analyze:
%s

Please provide a comprehensive analysis in about 10 lines:`

// Client talks to an Ollama-compatible generation endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// NewClient creates a new LLM client for the given model. Local models can
// take a while on long ingredient lists, hence the long timeout.
func NewClient(baseURL, model string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL: baseURL,
		model:   model,
	}
}

// AnalyzeIngredients returns the model's narrative analysis of the given
// ingredient text.
func (c *Client) AnalyzeIngredients(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: fmt.Sprintf(analysisPromptFormat, text),
		Stream: false,
		Options: map[string]interface{}{
			"temperature": 0.7,
			"top_p":       0.9,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLLMFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[LLM] API error - Status: %d, Response: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: status %d", domain.ErrLLMFailure, resp.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Response == "" {
		return "", fmt.Errorf("%w: empty response from model %s", domain.ErrLLMFailure, c.model)
	}

	return result.Response, nil
}

// Ping checks that the endpoint is reachable and serving models.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLLMFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrLLMFailure, resp.StatusCode)
	}
	return nil
}
