// Package relay picks a random nearby restaurant through the places search
// and details endpoints and shapes it into a SpotResult.
package relay

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/lunch-spot/internal/events"
	"github.com/ukydev/lunch-spot/internal/logging"
	"github.com/ukydev/lunch-spot/internal/models"
	"github.com/ukydev/lunch-spot/internal/places"
)

const (
	SearchRadiusMeters = 500
	SearchType         = "restaurant"
	PhotoMaxWidth      = 400

	publishTimeout = 2 * time.Second
)

// DetailFields are requested from Place Details for the picked candidate.
var DetailFields = []string{
	"place_id", "name", "formatted_address", "geometry", "photos",
	"rating", "opening_hours", "website", "vicinity",
}

var (
	ErrNoResults       = errors.New("no lunch spot found nearby")
	ErrDetailsNotFound = errors.New("details not found for the selected spot")
)

// PlacesAPI is the upstream places service.
type PlacesAPI interface {
	SearchNearby(ctx context.Context, p places.SearchParams) ([]places.SearchResult, error)
	Details(ctx context.Context, placeID string, fields []string) (*places.PlaceDetails, error)
	PhotoURL(photoReference string, maxWidth int) string
}

// Picker returns an index in [0, n). n is always positive.
type Picker func(n int) int

// Service handles lunch spot lookups.
type Service struct {
	places    PlacesAPI
	pick      Picker
	publisher events.Publisher
	now       func() time.Time
}

// NewService creates a lookup service. A nil picker uses math/rand/v2, a nil
// publisher discards events.
func NewService(api PlacesAPI, pick Picker, publisher events.Publisher) *Service {
	if pick == nil {
		pick = rand.IntN
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{places: api, pick: pick, publisher: publisher, now: time.Now}
}

// Keyword returns the search keyword for a genre. An empty genre searches for
// the category name itself.
func Keyword(genre string) string {
	if genre == "" {
		return SearchType
	}
	return genre
}

// Lookup searches around req, picks one candidate uniformly at random and
// returns its shaped details. It makes at most two upstream calls.
func (s *Service) Lookup(ctx context.Context, req models.LookupRequest) (*models.SpotResult, error) {
	logger := logging.FromContext(ctx)

	candidates, err := s.places.SearchNearby(ctx, places.SearchParams{
		Lat:          req.Lat,
		Lon:          req.Lon,
		RadiusMeters: SearchRadiusMeters,
		Type:         SearchType,
		Keyword:      Keyword(req.Genre),
	})
	if err != nil {
		return nil, fmt.Errorf("nearby search failed: %w", err)
	}
	if len(candidates) == 0 {
		logger.WithField("genre", req.Genre).Info("No candidates found")
		return nil, ErrNoResults
	}

	picked := candidates[s.pick(len(candidates))]
	logger.WithFields(log.Fields{
		"candidates": len(candidates),
		"place_id":   picked.PlaceID,
	}).Debug("Picked candidate")

	details, err := s.places.Details(ctx, picked.PlaceID, DetailFields)
	if err != nil {
		return nil, fmt.Errorf("place details failed: %w", err)
	}
	if details == nil {
		logger.WithField("place_id", picked.PlaceID).Info("No details for picked candidate")
		return nil, ErrDetailsNotFound
	}

	result := s.shape(picked.PlaceID, details)
	s.publish(ctx, req, result, len(candidates))
	return result, nil
}

func (s *Service) shape(placeID string, d *places.PlaceDetails) *models.SpotResult {
	result := &models.SpotResult{
		Name:    d.Name,
		Lat:     d.Geometry.Location.Lat,
		Lon:     d.Geometry.Location.Lng,
		Rating:  d.Rating,
		Address: d.FormattedAddress,
		PlaceID: placeID,
		Website: d.Website,
	}
	if result.Address == "" {
		result.Address = d.Vicinity
	}
	if d.PlaceID != "" {
		result.PlaceID = d.PlaceID
	}
	if len(d.Photos) > 0 {
		result.PhotoURL = s.places.PhotoURL(d.Photos[0].PhotoReference, PhotoMaxWidth)
	}
	if d.OpeningHours != nil {
		result.OpeningHours = append(make([]string, 0, len(d.OpeningHours.WeekdayText)), d.OpeningHours.WeekdayText...)
	}
	return result
}

func (s *Service) publish(ctx context.Context, req models.LookupRequest, result *models.SpotResult, candidates int) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := models.SpotEvent{
		RequestID:  logging.RequestID(ctx),
		Genre:      req.Genre,
		PlaceID:    result.PlaceID,
		Name:       result.Name,
		Location:   models.Location{Lat: result.Lat, Lon: result.Lon},
		Candidates: candidates,
		PickedAt:   s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logging.FromContext(ctx).WithError(err).Warn("Failed to publish spot event")
	}
}
