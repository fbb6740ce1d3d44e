package client

import (
	"net/url"
	"strconv"

	"github.com/ukydev/lunch-spot/internal/models"
)

const (
	NoRatingLabel       = "No rating"
	NoOpeningHoursLabel = "No opening hours available."
	PlaceholderPhoto    = "placeholder.svg"
)

// RatingLabel renders a rating out of five.
func RatingLabel(rating *float64) string {
	if rating == nil {
		return NoRatingLabel
	}
	return strconv.FormatFloat(*rating, 'f', -1, 64) + " / 5"
}

// OpeningHoursLines returns one line per weekday, or a single fallback line.
func OpeningHoursLines(hours []string) []string {
	if len(hours) == 0 {
		return []string{NoOpeningHoursLabel}
	}
	return hours
}

// PhotoSource returns the spot photo or the placeholder image.
func PhotoSource(spot models.SpotResult) string {
	if spot.PhotoURL == "" {
		return PlaceholderPhoto
	}
	return spot.PhotoURL
}

// MapURL links to the spot on Google Maps.
func MapURL(spot models.SpotResult) string {
	params := url.Values{}
	params.Set("api", "1")
	params.Set("query", spot.Name)
	if spot.PlaceID != "" {
		params.Set("query_place_id", spot.PlaceID)
	}
	return "https://www.google.com/maps/search/?" + params.Encode()
}
