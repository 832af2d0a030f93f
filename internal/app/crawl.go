package app

import (
	"context"
	"errors"
	"sort"

	"github.com/saikatmaity13/vibemap/internal/domain"
)

var ErrNoCandidates = errors.New("no candidates for crawl step")

// crawlSequences maps a crawl type to its ordered step keywords.
// Unknown types fall back to date_night.
var crawlSequences = map[string][]string{
	"date_night": {"restaurant", "park", "ice_cream"},
}

// CrawlService builds a short path of places, one best-rated candidate
// per step of a fixed sequence.
type CrawlService struct {
	resolver *Resolver
	lat, lon float64
	radiusM  int
}

func NewCrawlService(resolver *Resolver, lat, lon float64, radiusM int) *CrawlService {
	return &CrawlService{resolver: resolver, lat: lat, lon: lon, radiusM: radiusM}
}

func (s *CrawlService) Generate(ctx context.Context, crawlType string) ([]domain.Place, error) {
	steps, ok := crawlSequences[crawlType]
	if !ok {
		steps = crawlSequences["date_night"]
	}

	path := make([]domain.Place, 0, len(steps))
	for _, step := range steps {
		places, _, err := s.resolver.Resolve(ctx, step, s.lat, s.lon, s.radiusM)
		if err != nil {
			return nil, err
		}
		top := topByRating(places, 10)
		if len(top) == 0 {
			return nil, ErrNoCandidates
		}
		path = append(path, top[0])
	}
	return path, nil
}

// topByRating returns up to n places sorted by rating descending; the
// stable sort preserves input order on ties.
func topByRating(places []domain.Place, n int) []domain.Place {
	out := make([]domain.Place, len(places))
	copy(out, places)
	sort.SliceStable(out, func(i, j int) bool {
		return rating(out[i]) > rating(out[j])
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func rating(p domain.Place) float64 {
	if p.Rating == nil {
		return 4.0
	}
	return *p.Rating
}
