package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/saikatmaity13/vibemap/internal/adapters/observability"
	"github.com/saikatmaity13/vibemap/internal/domain"
)

const (
	// cacheQueryCap bounds a single pattern query against the store.
	cacheQueryCap = 50
	// cacheMinHits is the freshness heuristic: below this many cached
	// matches the cache result is discarded and the provider is asked.
	cacheMinHits = 5

	allPlacesCap = 2000
	heatmapCap   = 1000
)

// Resolver is the read side of the place store: read-through search plus
// the bulk read paths (all places, heatmap).
type Resolver struct {
	repo    domain.PlaceRepository
	fetcher *Fetcher
}

func NewResolver(repo domain.PlaceRepository, fetcher *Fetcher) *Resolver {
	return &Resolver{repo: repo, fetcher: fetcher}
}

// Resolve expands term through the vibe taxonomy and serves matching
// places from the store. Fewer than cacheMinHits matches counts as a
// miss: the cached rows are discarded and the provider's live result is
// returned instead. The bool reports whether the store served the
// result.
func (r *Resolver) Resolve(ctx context.Context, term string, lat, lon float64, radiusM int) ([]domain.Place, bool, error) {
	pattern := domain.Pattern(term)
	log.Debug().Str("pattern", pattern).Msg("searching place cache")

	cached, err := r.repo.FindByTypePattern(ctx, pattern, cacheQueryCap)
	if err != nil {
		return nil, false, err
	}

	if len(cached) >= cacheMinHits {
		observability.ObserveCache("places", "hit")
		r.fillRatings(ctx, cached)
		return cached, true, nil
	}

	observability.ObserveCache("places", "miss")
	return r.fetcher.FetchAndCache(ctx, term, lat, lon, radiusM), false, nil
}

// AllPlaces returns up to allPlacesCap arbitrary places.
func (r *Resolver) AllPlaces(ctx context.Context) ([]domain.Place, error) {
	places, err := r.repo.FindAll(ctx, allPlacesCap)
	if err != nil {
		return nil, err
	}
	r.fillRatings(ctx, places)
	return places, nil
}

// Heatmap returns fixed-intensity [lat, lon, 1.0] triples for places
// matching a vibe or type pattern.
func (r *Resolver) Heatmap(ctx context.Context, vibe string) ([][3]float64, error) {
	coords, err := r.repo.CoordsByTypePattern(ctx, domain.Pattern(vibe), heatmapCap)
	if err != nil {
		return nil, err
	}
	out := make([][3]float64, 0, len(coords))
	for _, c := range coords {
		out = append(out, [3]float64{c.Lat, c.Lon, 1.0})
	}
	return out, nil
}

// fillRatings synthesizes a rating for any record that lacks one and
// persists it so the value stays stable across requests.
func (r *Resolver) fillRatings(ctx context.Context, places []domain.Place) {
	for i := range places {
		if places[i].Rating != nil {
			continue
		}
		rating := domain.SyntheticRating()
		places[i].Rating = &rating
		if err := r.repo.PersistRating(ctx, places[i].PlaceID, rating); err != nil {
			log.Warn().Err(err).Str("place_id", places[i].PlaceID).Msg("rating persist failed")
		}
	}
}
