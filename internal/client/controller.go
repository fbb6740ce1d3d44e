// Package client drives a lunch spot lookup from the user's side: it acquires
// coordinates, calls the relay and renders the outcome through a View.
package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/lunch-spot/internal/models"
)

// Messages shown by the controller itself. Relay failures show the relay's message.
const (
	MsgLocationUnsupported = "Your device does not support location services."
	MsgLocationFailed      = "Could not get your location. Turn on location services and try again."
	MsgLookupFailed        = "Something went wrong while finding a lunch spot."
	MsgNotFound            = "No lunch spot found nearby."
)

var (
	ErrLocationUnsupported = errors.New("location services are not supported")
	ErrBusy                = errors.New("a lookup is already in progress")
	ErrEmptyResult         = errors.New("relay returned a spot without a name")
)

// View is the set of UI outputs the controller writes to.
type View interface {
	SetTriggerEnabled(enabled bool)
	ShowLoading()
	ShowSpot(spot models.SpotResult)
	// ShowError displays message; retry controls the "try any genre" affordance.
	ShowError(message string, retry bool)
}

// Locator acquires the device position. It returns ErrLocationUnsupported when
// the runtime has no location capability.
type Locator interface {
	Locate(ctx context.Context) (models.Location, error)
}

// Backend requests a lunch spot from the relay.
type Backend interface {
	LunchSpot(ctx context.Context, req models.LookupRequest) (*models.SpotResult, error)
}

// Controller runs one lookup at a time. Triggers arriving while a lookup is in
// flight are ignored.
type Controller struct {
	view    View
	locator Locator
	backend Backend

	inFlight atomic.Bool

	mu   sync.Mutex
	last *models.Location
}

// NewController creates a controller writing to view.
func NewController(view View, locator Locator, backend Backend) *Controller {
	return &Controller{view: view, locator: locator, backend: backend}
}

// Decide acquires fresh coordinates and looks up a spot for genre.
func (c *Controller) Decide(ctx context.Context, genre string) error {
	return c.run(ctx, genre, false)
}

// Retry repeats the lookup for any genre, reusing the last known coordinates
// and reacquiring them only when none are known.
func (c *Controller) Retry(ctx context.Context) error {
	return c.run(ctx, "", true)
}

func (c *Controller) run(ctx context.Context, genre string, reuse bool) error {
	if !c.inFlight.CompareAndSwap(false, true) {
		log.Debug("Ignoring trigger while a lookup is in flight")
		return ErrBusy
	}
	defer c.inFlight.Store(false)

	c.view.SetTriggerEnabled(false)
	defer c.view.SetTriggerEnabled(true)
	c.view.ShowLoading()

	loc, err := c.location(ctx, reuse)
	if err != nil {
		log.WithError(err).Warn("Failed to acquire location")
		if errors.Is(err, ErrLocationUnsupported) {
			c.view.ShowError(MsgLocationUnsupported, false)
		} else {
			c.view.ShowError(MsgLocationFailed, false)
		}
		return err
	}

	req := models.LookupRequest{Lat: loc.Lat, Lon: loc.Lon, Genre: genre}
	spot, err := c.backend.LunchSpot(ctx, req)
	if err == nil && (spot == nil || spot.Name == "") {
		err = ErrEmptyResult
	}
	if err != nil {
		log.WithError(err).WithField("genre", genre).Warn("Lunch spot lookup failed")
		// Retry is offered only when a genre filter was applied.
		c.view.ShowError(errorMessage(err), genre != "")
		return err
	}

	c.view.ShowSpot(*spot)
	return nil
}

func (c *Controller) location(ctx context.Context, reuse bool) (models.Location, error) {
	if reuse {
		c.mu.Lock()
		last := c.last
		c.mu.Unlock()
		if last != nil {
			return *last, nil
		}
	}

	loc, err := c.locator.Locate(ctx)
	if err != nil {
		return models.Location{}, err
	}

	c.mu.Lock()
	c.last = &loc
	c.mu.Unlock()
	return loc, nil
}

func errorMessage(err error) string {
	var relayErr *RelayError
	switch {
	case errors.As(err, &relayErr) && relayErr.Message != "":
		return relayErr.Message
	case errors.Is(err, ErrEmptyResult):
		return MsgNotFound
	default:
		return MsgLookupFailed
	}
}
