package places

// Response statuses returned by the Places web service.
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
	StatusNotFound    = "NOT_FOUND"

	StatusRequestDenied  = "REQUEST_DENIED"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
)

// rejected reports statuses where the service refused the caller rather than the query.
func rejected(status string) bool {
	return status == StatusRequestDenied || status == StatusOverQueryLimit
}

// succeeded reports statuses whose payload can be used as is.
func succeeded(status string) bool {
	return status == StatusOK || status == ""
}

// SearchResponse is the Nearby Search payload.
type SearchResponse struct {
	Results      []SearchResult `json:"results"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// SearchResult is a candidate venue before detail enrichment.
type SearchResult struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Vicinity string   `json:"vicinity,omitempty"`
	Geometry Geometry `json:"geometry"`
	Rating   *float64 `json:"rating,omitempty"`
	Types    []string `json:"types,omitempty"`
}

// DetailsResponse is the Place Details payload. Result is nil when the place
// could not be resolved.
type DetailsResponse struct {
	Result       *PlaceDetails `json:"result"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// PlaceDetails holds the fields requested from Place Details.
type PlaceDetails struct {
	PlaceID          string        `json:"place_id,omitempty"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address,omitempty"`
	Vicinity         string        `json:"vicinity,omitempty"`
	Geometry         Geometry      `json:"geometry"`
	Photos           []Photo       `json:"photos,omitempty"`
	Rating           *float64      `json:"rating,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
	Website          string        `json:"website,omitempty"`
}

type Geometry struct {
	Location LatLng `json:"location"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Photo struct {
	Height         int    `json:"height"`
	Width          int    `json:"width"`
	PhotoReference string `json:"photo_reference"`
}

type OpeningHours struct {
	OpenNow     bool     `json:"open_now"`
	WeekdayText []string `json:"weekday_text"`
}
