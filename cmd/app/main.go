package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"esprit-rooms-backend/internal/config"
	"esprit-rooms-backend/internal/schedule"
	"esprit-rooms-backend/internal/server"
	"esprit-rooms-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("config load failed", zap.String("path", *configPath), zap.Error(err))
	}
	if key := os.Getenv("API_KEY"); key != "" {
		cfg.APIKey = key
	}

	ctx := context.Background()

	base, fb, httpSrc := buildSource(ctx, cfg, logger)
	cached := storage.NewCachedSource(base)
	if _, err := cached.Refresh(ctx); err != nil {
		// Not fatal: the first successful refresh fills the cache.
		logger.Warn("initial dataset load failed", zap.Error(err))
	}

	engine := schedule.NewEngine(cached, resolveSlots(cfg, logger), logger)

	c := cron.New()
	if _, err := c.AddFunc(cfg.RefreshCron, func() {
		refresh(ctx, cfg, cached, engine, fb, httpSrc, logger)
	}); err != nil {
		logger.Fatal("invalid refresh schedule", zap.String("refresh", cfg.RefreshCron), zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	srv := server.New(engine, cfg, logger)
	logger.Info("listening", zap.String("addr", cfg.Listen))
	if err := http.ListenAndServe(cfg.Listen, srv.Handler()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// buildSource picks the dataset backend: Firebase wins over URL, URL over
// a local file.
func buildSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Source, *storage.FirebaseSource, *storage.HTTPSource) {
	if fc := cfg.Source.Firebase; fc != nil {
		fb, err := storage.NewFirebaseSource(ctx, fc.CredentialsFile, fc.DatabaseURL)
		if err != nil {
			logger.Fatal("firebase connection failed", zap.Error(err))
		}
		logger.Info("firebase connected", zap.String("database_url", fc.DatabaseURL))
		return fb, fb, nil
	}
	if cfg.Source.URL != "" {
		src := storage.NewHTTPSource(cfg.Source.URL, logger)
		return src, nil, src
	}
	return storage.NewFileSource(cfg.Source.File), nil, nil
}

func resolveSlots(cfg *config.Config, logger *zap.Logger) schedule.Slots {
	table := cfg.ResolvedSlots()
	slots := schedule.Slots{Starts: table.Starts}

	var ok bool
	if slots.LunchStart, ok = schedule.ParseTime(table.LunchBreakStart); !ok {
		logger.Warn("unparseable lunch break start", zap.String("value", table.LunchBreakStart))
	}
	if slots.LunchEnd, ok = schedule.ParseTime(table.LunchBreakEnd); !ok {
		logger.Warn("unparseable lunch break end", zap.String("value", table.LunchBreakEnd))
	}
	return slots
}

// refresh reloads the dataset. HTTP sources are probed with a HEAD request
// first so an unchanged upstream costs no download; Firebase-backed setups
// optionally publish the recomputed free-rooms snapshot.
func refresh(ctx context.Context, cfg *config.Config, cached *storage.CachedSource, engine *schedule.Engine, fb *storage.FirebaseSource, httpSrc *storage.HTTPSource, logger *zap.Logger) {
	if httpSrc != nil && !httpSrc.Changed(ctx) {
		return
	}

	set, err := cached.Refresh(ctx)
	if err != nil {
		logger.Error("dataset refresh failed", zap.Error(err))
		return
	}
	logger.Info("dataset refreshed", zap.Int("groups", len(set)))

	if fb != nil && cfg.Source.Firebase.PublishSnapshot {
		snap, err := engine.Snapshot(ctx)
		if err != nil {
			logger.Error("snapshot build failed", zap.Error(err))
			return
		}
		if err := fb.PublishSnapshot(ctx, snap); err != nil {
			logger.Error("snapshot publish failed", zap.Error(err))
			return
		}
		logger.Info("free-rooms snapshot published", zap.String("last_update", snap.LastUpdate))
	}
}
