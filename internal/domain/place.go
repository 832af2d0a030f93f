package domain

import (
	"math"
	"math/rand/v2"
)

// Place is the canonical point-of-interest record. The JSON shape is part
// of the public API; the database row id is never serialized.
type Place struct {
	PlaceID string   `json:"PlaceID"`
	Name    string   `json:"Name"`
	Type    string   `json:"Type"`
	Lat     float64  `json:"Lat"`
	Lon     float64  `json:"Lon"`
	City    string   `json:"City"`
	Rating  *float64 `json:"Rating"`
	Address string   `json:"Address"`
}

// Bookmark is a user's saved place. The place fields are a denormalized
// snapshot taken at bookmarking time, not a reference.
type Bookmark struct {
	UserID string
	Place  Place
}

type User struct {
	ID       string
	Username string
}

// Coord is a bare lat/lon pair (heatmap projection).
type Coord struct {
	Lat float64
	Lon float64
}

// Feature is a normalized element from the external map-data provider,
// already reduced to a representative point.
type Feature struct {
	ID   string // e.g. "node/123456"
	Name string
	Lat  float64
	Lon  float64
	Tags map[string]string
}

// SyntheticRating returns a plausible rating in [3.8, 4.9], one decimal.
// Ratings are persisted on first synthesis so a record's rating is stable
// across requests.
func SyntheticRating() float64 {
	return math.Round((3.8+rand.Float64()*1.1)*10) / 10
}
