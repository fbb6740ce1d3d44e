package models

import "time"

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lon float64 `json:"lon" bson:"lon"`
}

// LookupRequest is the body of POST /api/get-lunch-spot.
// An empty Genre means any cuisine.
type LookupRequest struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Genre string  `json:"genre"`
}

// SpotResult is the normalized venue returned to the client.
type SpotResult struct {
	Name         string   `json:"name"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	PhotoURL     string   `json:"photoUrl,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Address      string   `json:"address"`
	OpeningHours []string `json:"openingHours,omitzero"`
	PlaceID      string   `json:"placeId,omitempty"`
	Website      string   `json:"website,omitempty"`
}

// ErrorResponse is the body of every non-2xx relay response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SpotEvent records a served lookup for the event sink.
type SpotEvent struct {
	RequestID  string    `json:"request_id,omitempty" bson:"request_id,omitempty"`
	Genre      string    `json:"genre" bson:"genre"`
	PlaceID    string    `json:"place_id" bson:"place_id"`
	Name       string    `json:"name" bson:"name"`
	Location   Location  `json:"location" bson:"location"`
	Candidates int       `json:"candidates" bson:"candidates"`
	PickedAt   time.Time `json:"picked_at" bson:"picked_at"`
}
