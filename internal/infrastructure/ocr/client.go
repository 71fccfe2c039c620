package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/scansafe/backend/internal/domain"
)

// Client extracts text from label images via an OCR.space compatible API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// parseResponse is the relevant subset of the OCR API response.
type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool        `json:"IsErroredOnProcessing"`
	ErrorMessage          interface{} `json:"ErrorMessage"` // string or []string depending on the error
}

// NewClient creates a new OCR API client. OCR can be slow on large photos,
// hence the generous timeout.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// ExtractText uploads one image and returns the concatenated parsed text.
func (c *Client) ExtractText(ctx context.Context, image []byte, filename string) (string, error) {
	if len(image) == 0 {
		return "", domain.ErrInvalidRequest
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}
	_ = writer.WriteField("language", "eng")
	_ = writer.WriteField("scale", "true")
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/parse/image", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrOCRFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[OCR] API error - Status: %d, Response: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: status %d", domain.ErrOCRFailure, resp.StatusCode)
	}

	var parsed parseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("%w: %v", domain.ErrOCRFailure, parsed.ErrorMessage)
	}

	var texts []string
	for _, result := range parsed.ParsedResults {
		if t := strings.TrimSpace(result.ParsedText); t != "" {
			texts = append(texts, t)
		}
	}

	return strings.Join(texts, "\n"), nil
}
