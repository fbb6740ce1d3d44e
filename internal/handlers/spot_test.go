package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/lunch-spot/internal/models"
	"github.com/ukydev/lunch-spot/internal/relay"
)

// MockSpotFinder is a mock implementation of SpotFinder
type MockSpotFinder struct {
	mock.Mock
}

func (m *MockSpotFinder) Lookup(ctx context.Context, req models.LookupRequest) (*models.SpotResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpotResult), args.Error(1)
}

func postLookup(t *testing.T, handler http.Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/get-lunch-spot", bytes.NewBuffer(data))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestLunchSpotHandler_Success(t *testing.T) {
	rating := 4.2
	finder := new(MockSpotFinder)
	finder.On("Lookup", mock.Anything, models.LookupRequest{Lat: 35.0, Lon: 135.0, Genre: "ramen"}).Return(&models.SpotResult{
		Name:         "Ramen Ichi",
		Lat:          35.001,
		Lon:          135.002,
		PhotoURL:     "https://photos.test/first-ref",
		Rating:       &rating,
		Address:      "1-1 Sanjo, Kyoto",
		OpeningHours: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	}, nil)

	w := postLookup(t, NewLunchSpotHandler(finder), map[string]interface{}{"lat": 35.0, "lon": 135.0, "genre": "ramen"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Ramen Ichi", body["name"])
	assert.Equal(t, 4.2, body["rating"])
	assert.Equal(t, "https://photos.test/first-ref", body["photoUrl"])
	assert.Len(t, body["openingHours"], 7)
	finder.AssertExpectations(t)
}

func TestLunchSpotHandler_OmitsAbsentFields(t *testing.T) {
	finder := new(MockSpotFinder)
	finder.On("Lookup", mock.Anything, mock.Anything).Return(&models.SpotResult{Name: "Plain", Address: "Somewhere"}, nil)

	w := postLookup(t, NewLunchSpotHandler(finder), models.LookupRequest{Lat: 1, Lon: 2})

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body, "photoUrl")
	assert.NotContains(t, body, "rating")
	assert.NotContains(t, body, "openingHours")
	assert.Equal(t, "Somewhere", body["address"])
}

func TestLunchSpotHandler_KeepsEmptyOpeningHours(t *testing.T) {
	finder := new(MockSpotFinder)
	finder.On("Lookup", mock.Anything, mock.Anything).Return(&models.SpotResult{Name: "Closed", OpeningHours: []string{}}, nil)

	w := postLookup(t, NewLunchSpotHandler(finder), models.LookupRequest{Lat: 1, Lon: 2})

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body, "openingHours")
	assert.Empty(t, body["openingHours"])
}

func TestLunchSpotHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"no results", relay.ErrNoResults, http.StatusNotFound, MsgNoResults},
		{"no details", relay.ErrDetailsNotFound, http.StatusNotFound, MsgDetailsMissing},
		{"wrapped no results", fmt.Errorf("lookup: %w", relay.ErrNoResults), http.StatusNotFound, MsgNoResults},
		{"upstream failure", fmt.Errorf("place details failed: %w", assert.AnError), http.StatusInternalServerError, MsgServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := new(MockSpotFinder)
			finder.On("Lookup", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := postLookup(t, NewLunchSpotHandler(finder), models.LookupRequest{Genre: "sushi"})

			assert.Equal(t, tt.wantStatus, w.Code)
			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestLunchSpotHandler_InvalidJSON(t *testing.T) {
	finder := new(MockSpotFinder)
	req := httptest.NewRequest(http.MethodPost, "/api/get-lunch-spot", bytes.NewBufferString("{bad json"))
	w := httptest.NewRecorder()

	NewLunchSpotHandler(finder).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	finder.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestLunchSpotHandler_MethodNotAllowed(t *testing.T) {
	finder := new(MockSpotFinder)
	req := httptest.NewRequest(http.MethodGet, "/api/get-lunch-spot", nil)
	w := httptest.NewRecorder()

	NewLunchSpotHandler(finder).ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
}

func TestHandleHealth(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
