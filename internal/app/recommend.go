package app

import (
	"context"

	"github.com/saikatmaity13/vibemap/internal/domain"
)

const recommendCap = 5

// RecommendService suggests places of the user's most-bookmarked type,
// excluding what they already saved.
type RecommendService struct {
	bookmarks domain.BookmarkRepository
	places    domain.PlaceRepository
}

func NewRecommendService(b domain.BookmarkRepository, p domain.PlaceRepository) *RecommendService {
	return &RecommendService{bookmarks: b, places: p}
}

func (s *RecommendService) Recommend(ctx context.Context, userID string) ([]domain.Place, error) {
	saved, err := s.bookmarks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(saved) == 0 {
		return nil, nil
	}

	counts := make(map[string]int)
	savedIDs := make([]string, 0, len(saved))
	for _, b := range saved {
		typ := b.Type
		if typ == "" {
			typ = "Unknown"
		}
		counts[typ]++
		savedIDs = append(savedIDs, b.PlaceID)
	}

	// ties break on map iteration order, which is deliberately arbitrary
	favorite := ""
	max := 0
	for typ, n := range counts {
		if n > max {
			max = n
			favorite = typ
		}
	}

	recs, err := s.places.FindByTypeExcluding(ctx, favorite, savedIDs, recommendCap)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if recs[i].Rating == nil {
			r := domain.SyntheticRating()
			recs[i].Rating = &r
		}
	}
	return recs, nil
}
