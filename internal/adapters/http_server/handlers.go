package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/saikatmaity13/vibemap/internal/app"
	"github.com/saikatmaity13/vibemap/internal/domain"
)

type Handlers struct {
	Auth      *app.AuthService
	Resolver  *app.Resolver
	Intent    *app.IntentResolver
	Crawl     *app.CrawlService
	Bookmarks *app.BookmarkService
	Recommend *app.RecommendService
	Sessions  domain.SessionStore

	// search defaults when the client sends no coordinates
	CenterLat  float64
	CenterLon  float64
	RadiusM    int
	SessionTTL time.Duration
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/login", h.login)
	s.mux.Get("/logout", h.logout)

	s.mux.Group(func(r chi.Router) {
		r.Use(RequireSession(h.Sessions))
		r.Get("/api/search", h.search)
		r.Get("/api/all_places", h.allPlaces)
		r.Post("/api/crawl", h.crawl)
		r.Post("/api/chat", h.chat)
		r.Post("/api/bookmark", h.bookmark)
		r.Get("/api/user/bookmarks", h.userBookmarks)
		r.Get("/api/heatmap", h.heatmap)
		r.Get("/api/recommend", h.recommend)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// nonNil keeps empty result sets serializing as [] instead of null.
func nonNil(ps []domain.Place) []domain.Place {
	if ps == nil {
		return []domain.Place{}
	}
	return ps
}

// ---- auth ----

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Username) == "" {
		writeError(w, http.StatusBadRequest, "username required")
		return
	}
	u, err := h.Auth.Login(r.Context(), strings.TrimSpace(body.Username))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	token, err := h.Sessions.Create(r.Context(), u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"username": u.Username})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		if err := h.Sessions.Delete(r.Context(), c.Value); err != nil {
			log.Warn().Err(err).Msg("session delete failed")
		}
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// ---- places ----

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	if q == "" {
		q = "cafe"
	}
	lat := parseFloat(r.URL.Query().Get("lat"), h.CenterLat)
	lon := parseFloat(r.URL.Query().Get("lon"), h.CenterLon)

	places, _, err := h.Resolver.Resolve(r.Context(), q, lat, lon, h.RadiusM)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"places": nonNil(places)})
}

func (h *Handlers) allPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.Resolver.AllPlaces(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"places": nonNil(places)})
}

func (h *Handlers) crawl(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Type == "" {
		body.Type = "date_night"
	}
	path, err := h.Crawl.Generate(r.Context(), body.Type)
	if err != nil {
		if errors.Is(err, app.ErrNoCandidates) {
			writeError(w, http.StatusNotFound, "Could not find places")
			return
		}
		writeError(w, http.StatusInternalServerError, "crawl failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"path": path})
}

func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	intent := h.Intent.Classify(body.Message)
	if !intent.Matched {
		writeJSON(w, http.StatusOK, map[string]any{"reply": intent.Reply, "places": []domain.Place{}})
		return
	}
	places, _, err := h.Resolver.Resolve(r.Context(), intent.Term, h.CenterLat, h.CenterLon, h.RadiusM)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reply": intent.Reply, "places": nonNil(places)})
}

func (h *Handlers) heatmap(w http.ResponseWriter, r *http.Request) {
	vibe := r.URL.Query().Get("vibe")
	if vibe == "" {
		vibe = "active"
	}
	triples, err := h.Resolver.Heatmap(r.Context(), vibe)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if triples == nil {
		triples = [][3]float64{}
	}
	writeJSON(w, http.StatusOK, triples)
}

// ---- per-user ----

func (h *Handlers) bookmark(w http.ResponseWriter, r *http.Request) {
	var p domain.Place
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.PlaceID == "" {
		writeError(w, http.StatusBadRequest, "PlaceID required")
		return
	}
	added, err := h.Bookmarks.Toggle(r.Context(), UserID(r.Context()), p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "bookmark failed")
		return
	}
	status := "removed"
	if added {
		status = "added"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (h *Handlers) userBookmarks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(h.Bookmarks.List(r.Context(), UserID(r.Context()))))
}

func (h *Handlers) recommend(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Recommend.Recommend(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(recs))
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
