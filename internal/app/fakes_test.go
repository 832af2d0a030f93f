package app_test

import (
	"context"
	"regexp"

	"github.com/saikatmaity13/vibemap/internal/domain"
)

// ---- fakes ----

// fakePlaceRepo mimics the store: insert-if-absent keyed on PlaceID,
// case-insensitive regexp matching on Type, insertion order preserved.
type fakePlaceRepo struct {
	places  []domain.Place
	inserts int
	failure error
}

func (f *fakePlaceRepo) find(placeID string) *domain.Place {
	for i := range f.places {
		if f.places[i].PlaceID == placeID {
			return &f.places[i]
		}
	}
	return nil
}

func (f *fakePlaceRepo) InsertIfAbsent(ctx context.Context, p domain.Place) error {
	if f.failure != nil {
		return f.failure
	}
	f.inserts++
	if f.find(p.PlaceID) != nil {
		return nil
	}
	f.places = append(f.places, p)
	return nil
}

func (f *fakePlaceRepo) FindByTypePattern(ctx context.Context, pattern string, limit int) ([]domain.Place, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	var out []domain.Place
	for _, p := range f.places {
		if re.MatchString(p.Type) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakePlaceRepo) FindAll(ctx context.Context, limit int) ([]domain.Place, error) {
	if limit > len(f.places) {
		limit = len(f.places)
	}
	out := make([]domain.Place, limit)
	copy(out, f.places[:limit])
	return out, nil
}

func (f *fakePlaceRepo) FindByTypeExcluding(ctx context.Context, typ string, excludeIDs []string, limit int) ([]domain.Place, error) {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []domain.Place
	for _, p := range f.places {
		if p.Type == typ && !excluded[p.PlaceID] {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakePlaceRepo) CoordsByTypePattern(ctx context.Context, pattern string, limit int) ([]domain.Coord, error) {
	places, err := f.FindByTypePattern(ctx, pattern, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Coord, 0, len(places))
	for _, p := range places {
		out = append(out, domain.Coord{Lat: p.Lat, Lon: p.Lon})
	}
	return out, nil
}

func (f *fakePlaceRepo) PersistRating(ctx context.Context, placeID string, rating float64) error {
	if p := f.find(placeID); p != nil && p.Rating == nil {
		p.Rating = &rating
	}
	return nil
}

// fakeSource returns canned features and records how it was called.
type fakeSource struct {
	feats    []domain.Feature
	err      error
	calls    int
	lastTags map[string][]string
}

func (f *fakeSource) Search(ctx context.Context, tags map[string][]string, lat, lon float64, radiusM int) ([]domain.Feature, error) {
	f.calls++
	f.lastTags = tags
	if f.err != nil {
		return nil, f.err
	}
	return f.feats, nil
}

type fakeUserRepo struct {
	users []domain.User
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) error {
	f.users = append(f.users, u)
	return nil
}

type fakeBookmarkRepo struct {
	bookmarks []domain.Bookmark
	err       error
}

func (f *fakeBookmarkRepo) Exists(ctx context.Context, userID, placeID string) (bool, error) {
	for _, b := range f.bookmarks {
		if b.UserID == userID && b.Place.PlaceID == placeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookmarkRepo) Add(ctx context.Context, b domain.Bookmark) error {
	if ok, _ := f.Exists(ctx, b.UserID, b.Place.PlaceID); ok {
		return nil
	}
	f.bookmarks = append(f.bookmarks, b)
	return nil
}

func (f *fakeBookmarkRepo) Remove(ctx context.Context, userID, placeID string) error {
	for i, b := range f.bookmarks {
		if b.UserID == userID && b.Place.PlaceID == placeID {
			f.bookmarks = append(f.bookmarks[:i], f.bookmarks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeBookmarkRepo) ListByUser(ctx context.Context, userID string) ([]domain.Place, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Place
	for _, b := range f.bookmarks {
		if b.UserID == userID {
			out = append(out, b.Place)
		}
	}
	return out, nil
}

// fakeEmbedder scores anchors by canned values keyed on anchor phrase.
type fakeEmbedder struct {
	scores map[string]float64
}

func (f *fakeEmbedder) Similarity(a, b string) float64 { return f.scores[b] }

// ---- helpers ----

func pf(f float64) *float64 { return &f }

func place(id, typ string, rating *float64) domain.Place {
	return domain.Place{
		PlaceID: id,
		Name:    "Place " + id,
		Type:    typ,
		Lat:     12.97,
		Lon:     77.59,
		City:    "Bangalore",
		Rating:  rating,
		Address: "Near somewhere, Bangalore",
	}
}
