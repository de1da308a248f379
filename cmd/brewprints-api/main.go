// @title         Brewprints API
// @version       0.1.0
// @description   Recipe storage, uploads, and brewing calculators

package main

import (
	"context"

	"brewprints/internal/modkit/repokit"
	"brewprints/internal/platform/config"
	"brewprints/internal/platform/logger"
	phttp "brewprints/internal/platform/net/http"
	"brewprints/internal/platform/store"

	"brewprints/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	// clickhouse only backs run telemetry and stats; the API runs without it
	chEnabled := chCfg.MayBool("ENABLED", false)
	chCfgBlock := store.CHConfig{Enabled: chEnabled}
	if chEnabled {
		chCfgBlock.URL = chCfg.MustString("DBURL")
	}

	// open the platform store (postgres + optional CH adapter)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "brewprints-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: chCfgBlock,
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail loudly at boot if a configured seam is unhealthy
	repokit.MustGuard(context.Background(), st)

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
