package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/saikatmaity13/vibemap/internal/domain"
)

// BookmarkService toggles and lists a user's saved places. The store
// keeps a denormalized snapshot of the place at bookmarking time.
type BookmarkService struct {
	repo domain.BookmarkRepository
}

func NewBookmarkService(repo domain.BookmarkRepository) *BookmarkService {
	return &BookmarkService{repo: repo}
}

// Toggle is its own inverse: a saved place is removed, an unsaved one is
// added. It reports true when the place was added.
func (s *BookmarkService) Toggle(ctx context.Context, userID string, p domain.Place) (bool, error) {
	exists, err := s.repo.Exists(ctx, userID, p.PlaceID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.repo.Remove(ctx, userID, p.PlaceID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.repo.Add(ctx, domain.Bookmark{UserID: userID, Place: p}); err != nil {
		return false, err
	}
	return true, nil
}

// List returns the user's saved places. A failing lookup degrades to an
// empty list rather than an error surface.
func (s *BookmarkService) List(ctx context.Context, userID string) []domain.Place {
	places, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("bookmark lookup failed")
		return nil
	}
	return places
}
