// Package places is a small client for the Google Places web service
// (Nearby Search, Place Details and photo URLs).
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// StatusError is returned when the service rejects the caller (denied key,
// quota) or pairs a failure status with a payload.
type StatusError struct {
	Endpoint string
	Status   string
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("places %s: %s: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("places %s: %s", e.Endpoint, e.Status)
}

// SearchParams describes a Nearby Search query.
type SearchParams struct {
	Lat          float64
	Lon          float64
	RadiusMeters int
	Type         string
	Keyword      string
}

// Client handles Google Places API requests.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Places client. A zero timeout leaves upstream calls unbounded.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SearchNearby returns the candidates around the given coordinates in the
// order the service ranked them.
func (c *Client) SearchNearby(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("location", formatCoord(p.Lat)+","+formatCoord(p.Lon))
	params.Set("radius", strconv.Itoa(p.RadiusMeters))
	if p.Type != "" {
		params.Set("type", p.Type)
	}
	if p.Keyword != "" {
		params.Set("keyword", p.Keyword)
	}
	params.Set("key", c.apiKey)

	var resp SearchResponse
	if err := c.getJSON(ctx, "/nearbysearch/json", params, &resp); err != nil {
		return nil, err
	}

	if rejected(resp.Status) || (!succeeded(resp.Status) && len(resp.Results) > 0) {
		return nil, &StatusError{Endpoint: "nearbysearch", Status: resp.Status, Message: resp.ErrorMessage}
	}
	if !succeeded(resp.Status) {
		log.WithFields(log.Fields{
			"status":  resp.Status,
			"message": resp.ErrorMessage,
		}).Debug("Nearby search returned no candidates")
		return nil, nil
	}

	log.WithFields(log.Fields{
		"candidates": len(resp.Results),
		"keyword":    p.Keyword,
	}).Debug("Nearby search completed")
	return resp.Results, nil
}

// Details fetches the requested fields for a place. It returns nil, nil when
// the service answers without a result, whatever the status.
func (c *Client) Details(ctx context.Context, placeID string, fields []string) (*PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}
	params.Set("key", c.apiKey)

	var resp DetailsResponse
	if err := c.getJSON(ctx, "/details/json", params, &resp); err != nil {
		return nil, err
	}

	if rejected(resp.Status) || (!succeeded(resp.Status) && resp.Result != nil) {
		return nil, &StatusError{Endpoint: "details", Status: resp.Status, Message: resp.ErrorMessage}
	}
	if resp.Result == nil {
		log.WithFields(log.Fields{
			"place_id": placeID,
			"status":   resp.Status,
		}).Debug("Place details returned no result")
	}
	return resp.Result, nil
}

// PhotoURL builds the photo endpoint URL for a photo reference.
func (c *Client) PhotoURL(photoReference string, maxWidth int) string {
	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(maxWidth))
	params.Set("photo_reference", photoReference)
	params.Set("key", c.apiKey)
	return c.baseURL + "/photo?" + params.Encode()
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build places request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call places %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("places %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse places %s response: %w", path, err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
