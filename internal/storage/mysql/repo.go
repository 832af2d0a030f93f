package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/saikatmaity13/vibemap/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func ratingArg(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// ---- places ----

func (r *Repo) InsertIfAbsent(ctx context.Context, p domain.Place) error {
	_, err := r.db.ExecContext(ctx, insertPlaceSQL,
		p.PlaceID, p.Name, p.Type, p.Lat, p.Lon, p.City, ratingArg(p.Rating), p.Address)
	return err
}

func (r *Repo) FindByTypePattern(ctx context.Context, pattern string, limit int) ([]domain.Place, error) {
	rows, err := r.db.QueryContext(ctx, findByTypePatternSQL, pattern, limit)
	if err != nil {
		return nil, err
	}
	return scanPlaces(rows)
}

func (r *Repo) FindAll(ctx context.Context, limit int) ([]domain.Place, error) {
	rows, err := r.db.QueryContext(ctx, findAllSQL, limit)
	if err != nil {
		return nil, err
	}
	return scanPlaces(rows)
}

func (r *Repo) FindByTypeExcluding(ctx context.Context, typ string, excludeIDs []string, limit int) ([]domain.Place, error) {
	q := "SELECT " + placeColumns + " FROM places WHERE type = ?"
	args := []any{typ}
	if len(excludeIDs) > 0 {
		q += " AND place_id NOT IN (?" + strings.Repeat(",?", len(excludeIDs)-1) + ")"
		for _, id := range excludeIDs {
			args = append(args, id)
		}
	}
	q += " LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanPlaces(rows)
}

func (r *Repo) CoordsByTypePattern(ctx context.Context, pattern string, limit int) ([]domain.Coord, error) {
	rows, err := r.db.QueryContext(ctx, coordsByTypePatternSQL, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Coord
	for rows.Next() {
		var c domain.Coord
		if err := rows.Scan(&c.Lat, &c.Lon); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) PersistRating(ctx context.Context, placeID string, rating float64) error {
	_, err := r.db.ExecContext(ctx, persistRatingSQL, rating, placeID)
	return err
}

func scanPlaces(rows *sql.Rows) ([]domain.Place, error) {
	defer rows.Close()

	var out []domain.Place
	for rows.Next() {
		var p domain.Place
		var rating sql.NullFloat64
		if err := rows.Scan(&p.PlaceID, &p.Name, &p.Type, &p.Lat, &p.Lon, &p.City, &rating, &p.Address); err != nil {
			return nil, err
		}
		if rating.Valid {
			f := rating.Float64
			p.Rating = &f
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ---- users ----

func (r *Repo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, findUserByNameSQL, username).Scan(&u.ID, &u.Username)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *Repo) Create(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL, u.ID, u.Username)
	return err
}

// ---- bookmarks ----

func (r *Repo) Exists(ctx context.Context, userID, placeID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, bookmarkExistsSQL, userID, placeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repo) Add(ctx context.Context, b domain.Bookmark) error {
	p := b.Place
	_, err := r.db.ExecContext(ctx, insertBookmarkSQL,
		b.UserID, p.PlaceID, p.Name, p.Type, p.Lat, p.Lon, p.City, ratingArg(p.Rating), p.Address)
	return err
}

func (r *Repo) Remove(ctx context.Context, userID, placeID string) error {
	_, err := r.db.ExecContext(ctx, deleteBookmarkSQL, userID, placeID)
	return err
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Place, error) {
	rows, err := r.db.QueryContext(ctx, listBookmarksSQL, userID)
	if err != nil {
		return nil, err
	}
	return scanPlaces(rows)
}
