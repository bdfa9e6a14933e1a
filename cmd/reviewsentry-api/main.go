// @title         Review Sentry API
// @version       1.0.0
// @description   Fake review classification with device and temporal analytics
// @BasePath      /api

//go:generate go tool swag init -g main.go -d ./,../../internal/services/api -o ../../internal/services/api/docs --ot go,json --parseInternal

package main

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"

	"reviewsentry/internal/core/analytics"
	"reviewsentry/internal/modkit"
	"reviewsentry/internal/modkit/repokit"
	"reviewsentry/internal/platform/config"
	"reviewsentry/internal/platform/logger"
	phttp "reviewsentry/internal/platform/net/http"
	"reviewsentry/internal/platform/store"

	"reviewsentry/internal/services/api"
	analyticsmod "reviewsentry/internal/services/api/analytics/module"
	analyticssvc "reviewsentry/internal/services/api/analytics/service"
	archivemod "reviewsentry/internal/services/archive/module"
)

func main() {
	// module config reads CORE_*, the http server reads CORE_API_*
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// the archive stores are optional; the engine itself is memory only
	pgURL := pgCfg.MayString("DBURL", "")
	chURL := chCfg.MayString("DBURL", "")
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "reviewsentry-api",
			PG: store.PGConfig{
				Enabled:     pgURL != "",
				URL:         pgURL,
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			CH: store.CHConfig{
				Enabled: chURL != "",
				URL:     chURL,
				Role:    "archive",
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	deps := modkit.Deps{Log: *l, Cfg: root, PG: st.PG, CH: st.CH}

	engineOpts := analyticsmod.EngineOptions(root)
	engineOpts.Sinks = []analytics.Sink{analyticssvc.MetricsSink{}}

	var workers sync.WaitGroup
	if archivemod.Enabled(deps) {
		arch := archivemod.New(deps, archivemod.Options{})
		if err := arch.Exporter().EnsureSchema(ctx); err != nil {
			l.Panic().Err(err).Msg("archive schema failed")
		}
		engineOpts.Sinks = append(engineOpts.Sinks, arch.Exporter())

		workers.Add(1)
		go func() {
			defer workers.Done()
			if err := arch.Exporter().Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				l.Error().Err(err).Msg("archive exporter stopped")
			}
		}()
		l.Info().Bool("pg", st.PG != nil).Bool("ch", st.CH != nil).Msg("archive exporter enabled")
	}

	engine := analytics.New(engineOpts)
	l.Info().Int("max_events", engineOpts.MaxEvents).Msg("analytics engine ready")

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Engine:         engine,
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
		},
	)

	// run until a signal cancels ctx, then let the archive drain
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
	stop()
	workers.Wait()
}
