package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/saikatmaity13/vibemap/internal/adapters/observability"
	"github.com/saikatmaity13/vibemap/internal/domain"
)

// Client talks to an Overpass API interpreter endpoint. Calls are
// rate-limited client-side; public Overpass instances throttle hard.
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) *Client {
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: 30 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Search returns features near (lat, lon) carrying any of the given tag
// values. tags maps a tag dimension (amenity, leisure, ...) to accepted
// values; values are matched as a whole-word alternation. Ways and
// relations are reduced to their center point by the interpreter.
func (c *Client) Search(ctx context.Context, tags map[string][]string, lat, lon float64, radiusM int) ([]domain.Feature, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	q := buildQuery(tags, lat, lon, radiusM)
	form := url.Values{"data": {q}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "vibemap/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("overpass", "interpreter", 0, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("overpass", "interpreter", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("overpass status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var body struct {
		Elements []element `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	out := make([]domain.Feature, 0, len(body.Elements))
	for _, el := range body.Elements {
		f, ok := el.feature()
		if !ok {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

type element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Tags map[string]string `json:"tags"`
}

// feature resolves the representative point: node coordinates directly,
// otherwise the interpreter-provided center of the way/relation.
func (el element) feature() (domain.Feature, bool) {
	f := domain.Feature{
		ID:   fmt.Sprintf("%s/%d", el.Type, el.ID),
		Name: el.Tags["name"],
		Tags: el.Tags,
	}
	switch {
	case el.Type == "node":
		f.Lat, f.Lon = el.Lat, el.Lon
	case el.Center != nil:
		f.Lat, f.Lon = el.Center.Lat, el.Center.Lon
	default:
		return domain.Feature{}, false
	}
	return f, true
}

func buildQuery(tags map[string][]string, lat, lon float64, radiusM int) string {
	var sb strings.Builder
	sb.WriteString("[out:json][timeout:25];(")

	// deterministic dimension order keeps queries reproducible in tests
	dims := make([]string, 0, len(tags))
	for dim := range tags {
		dims = append(dims, dim)
	}
	sort.Strings(dims)

	for _, dim := range dims {
		vals := tags[dim]
		if len(vals) == 0 {
			continue
		}
		sel := fmt.Sprintf("[%q~\"^(%s)$\"](around:%d,%f,%f);", dim, strings.Join(vals, "|"), radiusM, lat, lon)
		for _, kind := range []string{"node", "way", "relation"} {
			sb.WriteString(kind)
			sb.WriteString(sel)
		}
	}
	sb.WriteString(");out center;")
	return sb.String()
}
