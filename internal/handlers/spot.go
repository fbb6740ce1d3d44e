package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ukydev/lunch-spot/internal/logging"
	"github.com/ukydev/lunch-spot/internal/models"
	"github.com/ukydev/lunch-spot/internal/relay"
)

// Messages returned in ErrorResponse bodies.
const (
	MsgNoResults      = "No lunch spot found nearby."
	MsgDetailsMissing = "Could not find details for the selected spot."
	MsgServerError    = "A server error occurred."
	MsgInvalidRequest = "Invalid request body."
)

// SpotFinder looks up a lunch spot for a request.
type SpotFinder interface {
	Lookup(ctx context.Context, req models.LookupRequest) (*models.SpotResult, error)
}

// LunchSpotHandler handles POST /api/get-lunch-spot
type LunchSpotHandler struct {
	finder SpotFinder
}

// NewLunchSpotHandler creates a new lunch spot handler
func NewLunchSpotHandler(finder SpotFinder) *LunchSpotHandler {
	return &LunchSpotHandler{finder: finder}
}

func (h *LunchSpotHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidRequest)
		return
	}

	var req models.LookupRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidRequest)
		return
	}

	result, err := h.finder.Lookup(r.Context(), req)
	if err != nil {
		logger := logging.FromContext(r.Context()).WithError(err)
		switch {
		case errors.Is(err, relay.ErrNoResults):
			writeError(w, http.StatusNotFound, MsgNoResults)
		case errors.Is(err, relay.ErrDetailsNotFound):
			writeError(w, http.StatusNotFound, MsgDetailsMissing)
		default:
			logger.Error("Lunch spot lookup failed")
			writeError(w, http.StatusInternalServerError, MsgServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Message: message})
}
