package mysql

// Insert-if-absent: a duplicate PlaceID leaves the existing row
// untouched (first payload wins, re-fetches never overwrite).
const insertPlaceSQL = `
INSERT INTO places
  (place_id, name, type, lat, lon, city, rating, address)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  place_id = places.place_id
`

const placeColumns = "place_id, name, type, lat, lon, city, rating, address"

// Case-insensitive substring/alternation match on type. The pattern is
// either a single keyword or a |-joined disjunction of taxonomy
// keywords; REGEXP is unanchored, so plain keywords match as substrings.
const findByTypePatternSQL = `
SELECT ` + placeColumns + `
FROM places
WHERE LOWER(type) REGEXP LOWER(?)
LIMIT ?
`

const findAllSQL = `
SELECT ` + placeColumns + `
FROM places
LIMIT ?
`

const coordsByTypePatternSQL = `
SELECT lat, lon
FROM places
WHERE LOWER(type) REGEXP LOWER(?)
LIMIT ?
`

// Rating is written once; rows that already carry one keep it.
const persistRatingSQL = `
UPDATE places SET rating = ? WHERE place_id = ? AND rating IS NULL
`

const findUserByNameSQL = `
SELECT id, username FROM users WHERE username = ? LIMIT 1
`

const insertUserSQL = `
INSERT INTO users (id, username) VALUES (?, ?)
`

const bookmarkExistsSQL = `
SELECT 1 FROM bookmarks WHERE user_id = ? AND place_id = ? LIMIT 1
`

// The (user_id, place_id) unique key makes a concurrent double-add a
// no-op instead of an error.
const insertBookmarkSQL = `
INSERT INTO bookmarks
  (user_id, place_id, name, type, lat, lon, city, rating, address)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  user_id = bookmarks.user_id
`

const deleteBookmarkSQL = `
DELETE FROM bookmarks WHERE user_id = ? AND place_id = ?
`

const listBookmarksSQL = `
SELECT place_id, name, type, lat, lon, city, rating, address
FROM bookmarks
WHERE user_id = ?
`
