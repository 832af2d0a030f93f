package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	httpserver "github.com/saikatmaity13/vibemap/internal/adapters/http_server"
	"github.com/saikatmaity13/vibemap/internal/app"
	"github.com/saikatmaity13/vibemap/internal/domain"
)

// ---- in-memory fakes ----

type memPlaces struct{ places []domain.Place }

func (m *memPlaces) InsertIfAbsent(ctx context.Context, p domain.Place) error {
	for _, q := range m.places {
		if q.PlaceID == p.PlaceID {
			return nil
		}
	}
	m.places = append(m.places, p)
	return nil
}

func (m *memPlaces) FindByTypePattern(ctx context.Context, pattern string, limit int) ([]domain.Place, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	var out []domain.Place
	for _, p := range m.places {
		if re.MatchString(p.Type) && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPlaces) FindAll(ctx context.Context, limit int) ([]domain.Place, error) {
	if limit > len(m.places) {
		limit = len(m.places)
	}
	return append([]domain.Place(nil), m.places[:limit]...), nil
}

func (m *memPlaces) FindByTypeExcluding(ctx context.Context, typ string, ex []string, limit int) ([]domain.Place, error) {
	skip := map[string]bool{}
	for _, id := range ex {
		skip[id] = true
	}
	var out []domain.Place
	for _, p := range m.places {
		if p.Type == typ && !skip[p.PlaceID] && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPlaces) CoordsByTypePattern(ctx context.Context, pattern string, limit int) ([]domain.Coord, error) {
	ps, err := m.FindByTypePattern(ctx, pattern, limit)
	if err != nil {
		return nil, err
	}
	var out []domain.Coord
	for _, p := range ps {
		out = append(out, domain.Coord{Lat: p.Lat, Lon: p.Lon})
	}
	return out, nil
}

func (m *memPlaces) PersistRating(ctx context.Context, id string, rating float64) error {
	for i := range m.places {
		if m.places[i].PlaceID == id && m.places[i].Rating == nil {
			m.places[i].Rating = &rating
		}
	}
	return nil
}

type memUsers struct{ users []domain.User }

func (m *memUsers) FindByUsername(ctx context.Context, name string) (domain.User, error) {
	for _, u := range m.users {
		if u.Username == name {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *memUsers) Create(ctx context.Context, u domain.User) error {
	m.users = append(m.users, u)
	return nil
}

type memBookmarks struct{ items []domain.Bookmark }

func (m *memBookmarks) Exists(ctx context.Context, uid, pid string) (bool, error) {
	for _, b := range m.items {
		if b.UserID == uid && b.Place.PlaceID == pid {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookmarks) Add(ctx context.Context, b domain.Bookmark) error {
	m.items = append(m.items, b)
	return nil
}

func (m *memBookmarks) Remove(ctx context.Context, uid, pid string) error {
	for i, b := range m.items {
		if b.UserID == uid && b.Place.PlaceID == pid {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memBookmarks) ListByUser(ctx context.Context, uid string) ([]domain.Place, error) {
	var out []domain.Place
	for _, b := range m.items {
		if b.UserID == uid {
			out = append(out, b.Place)
		}
	}
	return out, nil
}

type memSessions struct {
	n      int
	tokens map[string]string
}

func (m *memSessions) Create(ctx context.Context, uid string) (string, error) {
	if m.tokens == nil {
		m.tokens = map[string]string{}
	}
	m.n++
	tok := fmt.Sprintf("tok-%d", m.n)
	m.tokens[tok] = uid
	return tok, nil
}

func (m *memSessions) Get(ctx context.Context, tok string) (string, bool, error) {
	uid, ok := m.tokens[tok]
	return uid, ok, nil
}

func (m *memSessions) Delete(ctx context.Context, tok string) error {
	delete(m.tokens, tok)
	return nil
}

type noSource struct{}

func (noSource) Search(ctx context.Context, tags map[string][]string, lat, lon float64, r int) ([]domain.Feature, error) {
	return nil, nil
}

// ---- harness ----

func pf(f float64) *float64 { return &f }

func newTestServer(t *testing.T, places *memPlaces) *httptest.Server {
	t.Helper()
	fetcher := app.NewFetcher(noSource{}, places, "Bangalore")
	resolver := app.NewResolver(places, fetcher)

	h := &httpserver.Handlers{
		Auth:       app.NewAuthService(&memUsers{}),
		Resolver:   resolver,
		Intent:     app.NewIntentResolver(nil),
		Crawl:      app.NewCrawlService(resolver, 12.9716, 77.5946, 5000),
		Bookmarks:  app.NewBookmarkService(&memBookmarks{}),
		Recommend:  app.NewRecommendService(&memBookmarks{}, places),
		Sessions:   &memSessions{},
		CenterLat:  12.9716,
		CenterLon:  77.5946,
		RadiusM:    5000,
		SessionTTL: time.Hour,
	}
	srv := httpserver.New()
	srv.MountHandlers(h)
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func login(t *testing.T, ts *httptest.Server, username string) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username})
	res, err := http.Post(ts.URL+"/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login status %d", res.StatusCode)
	}
	for _, c := range res.Cookies() {
		if c.Name == "vibemap_session" {
			return c
		}
	}
	t.Fatalf("no session cookie issued")
	return nil
}

func do(t *testing.T, ts *httptest.Server, method, path string, cookie *http.Cookie, body any) *http.Response {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return res
}

func seedCafes(places *memPlaces, n int) {
	for i := 0; i < n; i++ {
		places.places = append(places.places, domain.Place{
			PlaceID: fmt.Sprintf("node/%d", i), Name: fmt.Sprintf("Cafe %d", i),
			Type: "Cafe", Lat: 12.97, Lon: 77.59, City: "Bangalore",
			Rating: pf(4.2), Address: "Near cafe, Bangalore",
		})
	}
}

// ---- tests ----

func TestAPI_RequiresSession(t *testing.T) {
	ts := newTestServer(t, &memPlaces{})

	res := do(t, ts, http.MethodGet, "/api/search?q=cafe", nil, nil)
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestAPI_SearchServesCachedPlaces(t *testing.T) {
	places := &memPlaces{}
	seedCafes(places, 6)
	ts := newTestServer(t, places)
	cookie := login(t, ts, "saikat")

	res := do(t, ts, http.MethodGet, "/api/search?q=cafe", cookie, nil)
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var body struct {
		Places []domain.Place `json:"places"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Places) != 6 {
		t.Fatalf("expected 6 places, got %d", len(body.Places))
	}
	if body.Places[0].PlaceID == "" || body.Places[0].Rating == nil {
		t.Fatalf("wire shape wrong: %+v", body.Places[0])
	}
}

func TestAPI_ChatPresetScenario(t *testing.T) {
	places := &memPlaces{}
	for i := 0; i < 5; i++ {
		places.places = append(places.places, domain.Place{
			PlaceID: fmt.Sprintf("node/r%d", i), Name: "R", Type: "Restaurant",
			Lat: 12.97, Lon: 77.59, City: "Bangalore", Rating: pf(4.0),
		})
	}
	ts := newTestServer(t, places)
	cookie := login(t, ts, "saikat")

	res := do(t, ts, http.MethodPost, "/api/chat", cookie, map[string]string{"message": "I am hungry 🍔"})
	defer res.Body.Close()
	var body struct {
		Reply  string         `json:"reply"`
		Places []domain.Place `json:"places"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Reply != "Here's some food nearby 🍔" {
		t.Fatalf("unexpected reply: %q", body.Reply)
	}
	if len(body.Places) != 5 {
		t.Fatalf("expected restaurant resolution, got %d places", len(body.Places))
	}
}

func TestAPI_BookmarkToggle(t *testing.T) {
	places := &memPlaces{}
	ts := newTestServer(t, places)
	cookie := login(t, ts, "saikat")

	p := map[string]any{"PlaceID": "node/1", "Name": "Koshy's", "Type": "Cafe",
		"Lat": 12.97, "Lon": 77.59, "City": "Bangalore", "Rating": 4.5, "Address": "St Marks Rd"}

	res := do(t, ts, http.MethodPost, "/api/bookmark", cookie, p)
	var out map[string]string
	_ = json.NewDecoder(res.Body).Decode(&out)
	res.Body.Close()
	if out["status"] != "added" {
		t.Fatalf("expected added, got %+v", out)
	}

	res = do(t, ts, http.MethodPost, "/api/bookmark", cookie, p)
	_ = json.NewDecoder(res.Body).Decode(&out)
	res.Body.Close()
	if out["status"] != "removed" {
		t.Fatalf("expected removed, got %+v", out)
	}

	res = do(t, ts, http.MethodGet, "/api/user/bookmarks", cookie, nil)
	var list []domain.Place
	_ = json.NewDecoder(res.Body).Decode(&list)
	res.Body.Close()
	if len(list) != 0 {
		t.Fatalf("toggle twice must leave no bookmark: %+v", list)
	}
}

func TestAPI_CrawlNotFoundWhenStepEmpty(t *testing.T) {
	ts := newTestServer(t, &memPlaces{})
	cookie := login(t, ts, "saikat")

	res := do(t, ts, http.MethodPost, "/api/crawl", cookie, map[string]string{"type": "date_night"})
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
	var body map[string]string
	_ = json.NewDecoder(res.Body).Decode(&body)
	if body["error"] == "" {
		t.Fatalf("expected error body, got %+v", body)
	}
}

func TestAPI_HeatmapShape(t *testing.T) {
	places := &memPlaces{}
	places.places = append(places.places, domain.Place{
		PlaceID: "node/1", Name: "Gold's", Type: "Gym", Lat: 12.9, Lon: 77.6,
		City: "Bangalore", Rating: pf(4.1),
	})
	ts := newTestServer(t, places)
	cookie := login(t, ts, "saikat")

	res := do(t, ts, http.MethodGet, "/api/heatmap?vibe=active", cookie, nil)
	defer res.Body.Close()
	var triples [][3]float64
	if err := json.NewDecoder(res.Body).Decode(&triples); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(triples) != 1 || triples[0][2] != 1.0 {
		t.Fatalf("unexpected heatmap payload: %+v", triples)
	}
}

func TestAPI_LogoutInvalidatesSession(t *testing.T) {
	ts := newTestServer(t, &memPlaces{})
	cookie := login(t, ts, "saikat")

	res := do(t, ts, http.MethodGet, "/logout", cookie, nil)
	res.Body.Close()

	res = do(t, ts, http.MethodGet, "/api/all_places", cookie, nil)
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", res.StatusCode)
	}
}
