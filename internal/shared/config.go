package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	OverpassBase string
	City         string
	CenterLat    float64
	CenterLon    float64
	RadiusM      int

	VectorsPath string
	SeedWorkers int
	SessionTTL  time.Duration
}

func Load() Config {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/vibemap?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		OverpassBase: env("OVERPASS_BASE_URL", "https://overpass-api.de/api/interpreter"),
		City:         env("CITY", "Bangalore"),
		CenterLat:    atof("CENTER_LAT", 12.9716),
		CenterLon:    atof("CENTER_LON", 77.5946),
		RadiusM:      atoi("SEARCH_RADIUS_M", 5000),

		VectorsPath: env("WORD_VECTORS_PATH", ""),
		SeedWorkers: atoi("SEED_WORKERS", 4),
		SessionTTL:  time.Duration(atoi("SESSION_TTL_DAYS", 30)) * 24 * time.Hour,
	}
	if c.VectorsPath == "" {
		log.Warn().Msg("WORD_VECTORS_PATH is empty; chat similarity fallback disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
