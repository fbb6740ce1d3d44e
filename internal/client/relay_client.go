package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ukydev/lunch-spot/internal/models"
)

// LunchSpotPath is the relay endpoint.
const LunchSpotPath = "/api/get-lunch-spot"

// RelayError is a non-2xx relay response.
type RelayError struct {
	StatusCode int
	Message    string
}

func (e *RelayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay responded with status %d: %s", e.StatusCode, e.Message)
}

// RelayClient calls the relay over HTTP.
type RelayClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRelayClient creates a client for the relay at baseURL.
func NewRelayClient(baseURL string) *RelayClient {
	return &RelayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// LunchSpot posts req and decodes the spot or the relay's error message.
func (c *RelayClient) LunchSpot(ctx context.Context, req models.LookupRequest) (*models.SpotResult, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lookup request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+LunchSpotPath, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build relay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call relay: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read relay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		_ = json.Unmarshal(body, &errResp)
		return nil, &RelayError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	var spot models.SpotResult
	if err := json.Unmarshal(body, &spot); err != nil {
		return nil, fmt.Errorf("failed to decode relay response: %w", err)
	}
	return &spot, nil
}
