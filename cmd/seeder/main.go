package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/saikatmaity13/vibemap/internal/adapters/observability"
	"github.com/saikatmaity13/vibemap/internal/adapters/overpass"
	"github.com/saikatmaity13/vibemap/internal/app"
	"github.com/saikatmaity13/vibemap/internal/shared"
	mysqlrepo "github.com/saikatmaity13/vibemap/internal/storage/mysql"
)

// seedKeywords is the fixed catalogue fetched when priming an empty
// city database.
var seedKeywords = []string{"cafe", "restaurant", "library", "place_of_worship", "park", "garden"}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("city", cfg.City).
		Int("workers", cfg.SeedWorkers).
		Int("keywords", len(seedKeywords)).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	source := overpass.New(cfg.OverpassBase, 1)
	fetcher := app.NewFetcher(source, repo, cfg.City)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, kw := range seedKeywords {
		kw := kw

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(keyword string) {
			defer wg.Done()
			defer sem.Release(1)

			got := fetcher.FetchAndCache(ctx, keyword, cfg.CenterLat, cfg.CenterLon, cfg.RadiusM)
			if len(got) == 0 {
				log.Warn().Str("keyword", keyword).Msg("seed fetch returned nothing")
				return
			}
			log.Info().Str("keyword", keyword).Int("places", len(got)).Msg("seed ok")
		}(kw)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
