package app

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/saikatmaity13/vibemap/internal/domain"
)

// fetchCap bounds how many provider features are processed per call.
// Order is whatever the provider returns; no ranking before truncation.
const fetchCap = 40

// Fetcher pulls features from the external map-data provider, normalizes
// them into place records and caches them in the store.
type Fetcher struct {
	src  domain.FeatureSource
	repo domain.PlaceRepository
	city string
}

func NewFetcher(src domain.FeatureSource, repo domain.PlaceRepository, city string) *Fetcher {
	return &Fetcher{src: src, repo: repo, city: city}
}

// FetchAndCache queries the provider for features near (lat, lon)
// matching term, upserts every normalized record and returns them.
// Provider and store failures are swallowed: callers always get a list,
// possibly empty.
func (f *Fetcher) FetchAndCache(ctx context.Context, term string, lat, lon float64, radiusM int) []domain.Place {
	log.Info().Str("term", term).Msg("fetching live map data")

	feats, err := f.src.Search(ctx, searchTags(term), lat, lon, radiusM)
	if err != nil {
		log.Warn().Err(err).Str("term", term).Msg("map data fetch failed")
		return nil
	}
	if len(feats) > fetchCap {
		feats = feats[:fetchCap]
	}

	var out []domain.Place
	for _, ft := range feats {
		if ft.Name == "" {
			continue
		}
		rating := domain.SyntheticRating()
		p := domain.Place{
			PlaceID: ft.ID,
			Name:    ft.Name,
			Type:    placeType(ft.Tags),
			Lat:     ft.Lat,
			Lon:     ft.Lon,
			City:    f.city,
			Rating:  &rating,
			Address: "Near " + term + ", " + f.city,
		}
		if err := f.repo.InsertIfAbsent(ctx, p); err != nil {
			log.Warn().Err(err).Str("place_id", p.PlaceID).Msg("place upsert failed")
			return nil
		}
		out = append(out, p)
	}
	return out
}

// searchTags expands a vibe key to its taxonomy keywords across all tag
// dimensions (landuse included); a raw keyword is used directly.
func searchTags(term string) map[string][]string {
	if kws, ok := domain.VibeMap[term]; ok {
		return map[string][]string{
			"amenity": kws, "leisure": kws, "building": kws, "tourism": kws, "landuse": kws,
		}
	}
	one := []string{term}
	return map[string][]string{
		"amenity": one, "leisure": one, "building": one, "tourism": one,
	}
}

// placeType derives the category label from the first non-empty tag in
// priority order, defaulting to "Place".
func placeType(tags map[string]string) string {
	t := "Place"
	for _, dim := range []string{"amenity", "leisure", "tourism", "building"} {
		if v := tags[dim]; v != "" {
			t = v
			break
		}
	}
	return capitalize(strings.ReplaceAll(t, "_", " "))
}

// capitalize mirrors str.capitalize: first rune upper, rest lower.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
