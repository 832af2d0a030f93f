package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "github.com/saikatmaity13/vibemap/internal/adapters/http_server"
	"github.com/saikatmaity13/vibemap/internal/adapters/observability"
	"github.com/saikatmaity13/vibemap/internal/adapters/overpass"
	redisad "github.com/saikatmaity13/vibemap/internal/adapters/redis"
	"github.com/saikatmaity13/vibemap/internal/adapters/wordvec"
	"github.com/saikatmaity13/vibemap/internal/app"
	"github.com/saikatmaity13/vibemap/internal/domain"
	"github.com/saikatmaity13/vibemap/internal/shared"
	mysqlrepo "github.com/saikatmaity13/vibemap/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// optional similarity oracle; chat degrades to presets without it
	var embedder domain.Embedder
	if cfg.VectorsPath != "" {
		e, err := wordvec.Load(cfg.VectorsPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.VectorsPath).Msg("word vectors unavailable, presets only")
		} else {
			embedder = e
			log.Info().Int("words", e.Len()).Msg("word vectors loaded")
		}
	}

	// deps
	repo := mysqlrepo.New(db)
	sessions := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.SessionTTL)
	source := overpass.New(cfg.OverpassBase, 1)
	fetcher := app.NewFetcher(source, repo, cfg.City)
	resolver := app.NewResolver(repo, fetcher)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Auth:       app.NewAuthService(repo),
		Resolver:   resolver,
		Intent:     app.NewIntentResolver(embedder),
		Crawl:      app.NewCrawlService(resolver, cfg.CenterLat, cfg.CenterLon, cfg.RadiusM),
		Bookmarks:  app.NewBookmarkService(repo),
		Recommend:  app.NewRecommendService(repo, repo),
		Sessions:   sessions,
		CenterLat:  cfg.CenterLat,
		CenterLon:  cfg.CenterLon,
		RadiusM:    cfg.RadiusM,
		SessionTTL: cfg.SessionTTL,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Str("city", cfg.City).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
