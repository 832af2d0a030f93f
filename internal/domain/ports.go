package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type PlaceRepository interface {
	// InsertIfAbsent stores p only if no record with the same PlaceID
	// exists. Inserting a duplicate is a no-op, never an error.
	InsertIfAbsent(ctx context.Context, p Place) error
	// FindByTypePattern matches Type case-insensitively against a
	// keyword or |-joined disjunction. Order is not guaranteed.
	FindByTypePattern(ctx context.Context, pattern string, limit int) ([]Place, error)
	FindAll(ctx context.Context, limit int) ([]Place, error)
	// FindByTypeExcluding returns places of exactly typ whose PlaceID is
	// not in excludeIDs.
	FindByTypeExcluding(ctx context.Context, typ string, excludeIDs []string, limit int) ([]Place, error)
	CoordsByTypePattern(ctx context.Context, pattern string, limit int) ([]Coord, error)
	// PersistRating writes a rating only where none is stored yet.
	PersistRating(ctx context.Context, placeID string, rating float64) error
}

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, u User) error
}

type BookmarkRepository interface {
	Exists(ctx context.Context, userID, placeID string) (bool, error)
	Add(ctx context.Context, b Bookmark) error
	Remove(ctx context.Context, userID, placeID string) error
	// ListByUser returns the denormalized place snapshots saved by a user.
	ListByUser(ctx context.Context, userID string) ([]Place, error)
}

// FeatureSource is the external map-data provider. tags maps OSM tag
// dimensions (amenity, leisure, ...) to accepted values.
type FeatureSource interface {
	Search(ctx context.Context, tags map[string][]string, lat, lon float64, radiusM int) ([]Feature, error)
}

// Embedder is the text-similarity oracle behind intent classification.
// A nil Embedder degrades the resolver to preset-only matching.
type Embedder interface {
	Similarity(a, b string) float64
}

// SessionStore keeps login sessions keyed by opaque token.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Get(ctx context.Context, token string) (string, bool, error)
	Delete(ctx context.Context, token string) error
}
