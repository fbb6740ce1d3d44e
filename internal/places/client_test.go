package places

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", server.URL+"/", 0), server
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestSearchNearby_SendsQuery(t *testing.T) {
	var got url.Values
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nearbysearch/json", r.URL.Path)
		got = r.URL.Query()
		writeJSON(t, w, SearchResponse{
			Status:  StatusOK,
			Results: []SearchResult{{PlaceID: "a", Name: "A"}, {PlaceID: "b", Name: "B"}},
		})
	})

	results, err := client.SearchNearby(context.Background(), SearchParams{
		Lat: 35.0, Lon: 135.5, RadiusMeters: 500, Type: "restaurant", Keyword: "ramen noodles",
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].PlaceID)
	assert.Equal(t, "35,135.5", got.Get("location"))
	assert.Equal(t, "500", got.Get("radius"))
	assert.Equal(t, "restaurant", got.Get("type"))
	assert.Equal(t, "ramen noodles", got.Get("keyword"))
	assert.Equal(t, "test-key", got.Get("key"))
}

func TestSearchNearby_Statuses(t *testing.T) {
	tests := []struct {
		name       string
		response   SearchResponse
		wantErr    bool
		wantStatus string
	}{
		{name: "zero results", response: SearchResponse{Status: StatusZeroResults}},
		{name: "request denied", response: SearchResponse{Status: "REQUEST_DENIED", ErrorMessage: "bad key"}, wantErr: true, wantStatus: "REQUEST_DENIED"},
		{name: "over limit", response: SearchResponse{Status: "OVER_QUERY_LIMIT"}, wantErr: true, wantStatus: "OVER_QUERY_LIMIT"},
		{name: "invalid request without results", response: SearchResponse{Status: "INVALID_REQUEST", Results: []SearchResult{}}},
		{name: "unknown error without results", response: SearchResponse{Status: "UNKNOWN_ERROR"}},
		{name: "invalid request with results", response: SearchResponse{Status: "INVALID_REQUEST", Results: []SearchResult{{PlaceID: "a"}}}, wantErr: true, wantStatus: "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.response)
			})

			results, err := client.SearchNearby(context.Background(), SearchParams{RadiusMeters: 500})
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Empty(t, results)
				return
			}
			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.wantStatus, statusErr.Status)
		})
	}
}

func TestSearchNearby_TransportAndParseFailures(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		})
		_, err := client.SearchNearby(context.Background(), SearchParams{})
		assert.ErrorContains(t, err, "502")
	})

	t.Run("invalid json", func(t *testing.T) {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		})
		_, err := client.SearchNearby(context.Background(), SearchParams{})
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("server unreachable", func(t *testing.T) {
		client, server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
		server.Close()
		_, err := client.SearchNearby(context.Background(), SearchParams{})
		assert.Error(t, err)
	})
}

func TestDetails(t *testing.T) {
	rating := 4.5
	var got url.Values
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/details/json", r.URL.Path)
		got = r.URL.Query()
		writeJSON(t, w, DetailsResponse{
			Status: StatusOK,
			Result: &PlaceDetails{
				Name:     "Soba Ni",
				Vicinity: "1-2 Kita",
				Geometry: Geometry{Location: LatLng{Lat: 35.01, Lng: 135.02}},
				Rating:   &rating,
				Photos:   []Photo{{PhotoReference: "ref-1"}},
				OpeningHours: &OpeningHours{
					WeekdayText: []string{"Monday: 11:00 AM – 3:00 PM"},
				},
			},
		})
	})

	details, err := client.Details(context.Background(), "place-9", []string{"name", "geometry"})

	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, "Soba Ni", details.Name)
	assert.Equal(t, 135.02, details.Geometry.Location.Lng)
	assert.Equal(t, 4.5, *details.Rating)
	assert.Equal(t, "place-9", got.Get("place_id"))
	assert.Equal(t, "name,geometry", got.Get("fields"))
}

func TestDetails_NoResult(t *testing.T) {
	for _, status := range []string{StatusOK, StatusNotFound, "INVALID_REQUEST", "UNKNOWN_ERROR"} {
		t.Run(status, func(t *testing.T) {
			client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, map[string]interface{}{"status": status, "html_attributions": []string{}})
			})
			details, err := client.Details(context.Background(), "gone", nil)
			require.NoError(t, err)
			assert.Nil(t, details)
		})
	}
}

func TestDetails_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		response   DetailsResponse
		wantStatus string
	}{
		{"request denied", DetailsResponse{Status: StatusRequestDenied, ErrorMessage: "bad key"}, StatusRequestDenied},
		{"over limit", DetailsResponse{Status: StatusOverQueryLimit}, StatusOverQueryLimit},
		{"failure status with result", DetailsResponse{Status: "INVALID_REQUEST", Result: &PlaceDetails{Name: "x"}}, "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.response)
			})
			_, err := client.Details(context.Background(), "p1", nil)
			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, "details", statusErr.Endpoint)
			assert.Equal(t, tt.wantStatus, statusErr.Status)
		})
	}
}

func TestPhotoURL(t *testing.T) {
	client := NewClient("k", "https://maps.example.com/place/", 0)
	u, err := url.Parse(client.PhotoURL("abc/def", 400))
	require.NoError(t, err)

	assert.Equal(t, "maps.example.com", u.Host)
	assert.Equal(t, "/place/photo", u.Path)
	assert.Equal(t, "400", u.Query().Get("maxwidth"))
	assert.Equal(t, "abc/def", u.Query().Get("photo_reference"))
	assert.Equal(t, "k", u.Query().Get("key"))
}
