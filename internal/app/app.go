// Package app wires the services shared by the HTTP server and the warm-up
// CLI from a loaded configuration.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/cache"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/config"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/curated"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/db"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/hadith"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/memory"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/notify"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/quran"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/redis"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/storage"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/translate"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/upstream"
)

type App struct {
	Config    *config.Config
	Upstream  *upstream.Client
	Quran     *quran.Service
	Hadith    *hadith.Service
	Memory    *memory.Memory
	Engine    *translate.Engine
	Publisher notify.Publisher
	Storage   storage.Storage

	rdb *goredis.Client
}

// SetupLogging configures the global zerolog logger for the environment.
func SetupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// New builds every service. Redis, Postgres and MQTT are optional; without
// them the app falls back to in-process equivalents.
func New(ctx context.Context, cfg *config.Config, clientID string) (*App, error) {
	a := &App{Config: cfg}

	var responses cache.Cache = cache.NewMemory(cfg.Cache.Size, cfg.Cache.TTL)
	var memoryCache cache.Cache = cache.NewMemory(cfg.Cache.Size, cfg.Cache.TTL)
	if cfg.Redis.Address != "" {
		rdb, err := redis.Connect(ctx, cfg.Redis.Address, cfg.Redis.Username, cfg.Redis.Password)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.rdb = rdb
		responses = cache.NewLayered(responses, cache.NewRedis(rdb, "tarjumo:upstream:"), time.Hour)
		memoryCache = cache.NewLayered(memoryCache, cache.NewRedis(rdb, "tarjumo:"), 10*time.Minute)
	}

	a.Upstream = upstream.NewClient(cfg.Upstream.Timeout, responses)
	a.Quran = quran.NewService(a.Upstream, cfg.Upstream.AlQuranBaseURL, cfg.Upstream.QuranComURL, cfg.Cache.TTL)

	var store db.Store
	if cfg.DatabaseURL != "" {
		if err := db.Init(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("db init: %w", err)
		}
		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			return nil, fmt.Errorf("db migrate: %w", err)
		}
		store = db.NewStore(db.DB)
	} else {
		log.Warn().Msg("DATABASE_URL not set, translation memory is kept in process")
		store = db.NewMemoryStore()
	}
	a.Memory = memory.New(store, memoryCache, cfg.Cache.MemoryTTL)

	cur, err := curated.Load(cfg.CuratedPath)
	if err != nil {
		return nil, fmt.Errorf("curated translations: %w", err)
	}

	a.Engine = NewEngine(cfg)
	log.Info().Strs("providers", a.Engine.Providers()).Msg("[translate] engines configured")

	a.Publisher, err = notify.Connect(cfg.MQTTBroker, clientID)
	if err != nil {
		log.Error().Err(err).Msg("MQTT unavailable, translation events disabled")
		a.Publisher = notify.Nop{}
	}

	a.Hadith = hadith.NewService(hadith.Config{
		AhadithURL: cfg.Upstream.AhadithURL,
		GadingURL:  cfg.Upstream.GadingURL,
		TTL:        cfg.Cache.TTL,
		MinScore:   cfg.Translation.MinScore,
	}, a.Upstream, a.Engine, a.Memory, cur, a.Publisher)

	a.Storage, err = NewStorage(cfg.Storage)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// NewEngine builds the machine translation engine from the configured providers.
func NewEngine(cfg *config.Config) *translate.Engine {
	t := cfg.Translation
	timeout := cfg.Upstream.Timeout

	providers := []translate.Provider{
		translate.Limit(translate.NewGoogle(t.GoogleURL, timeout), t.RatePerSecond),
		translate.Limit(translate.NewMyMemory(t.MyMemoryURL, t.MyMemoryEmail, timeout), t.RatePerSecond),
	}
	if t.LibreURL != "" {
		providers = append(providers,
			translate.Limit(translate.NewLibreTranslate(t.LibreURL, t.LibreAPIKey, timeout), t.RatePerSecond))
	}
	return translate.NewEngine(t.ChunkSize, providers...)
}

// NewStorage selects the configured export backend.
func NewStorage(cfg config.Storage) (storage.Storage, error) {
	if cfg.UseSpaces {
		spaces, err := storage.NewSpacesStorage(
			cfg.SpacesEndpoint,
			cfg.SpacesRegion,
			cfg.SpacesBucket,
			cfg.SpacesCDNURL,
			cfg.SpacesAccessKey,
			cfg.SpacesSecretKey,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Spaces storage: %w", err)
		}
		log.Info().Str("bucket", cfg.SpacesBucket).Msg("using DigitalOcean Spaces storage")
		return spaces, nil
	}

	log.Info().Str("dir", cfg.ExportDir).Msg("using local export storage")
	return storage.NewLocalStorage(cfg.ExportDir), nil
}

// PurgeExpired removes expired translation memory entries every interval
// until ctx is done.
func (a *App) PurgeExpired(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.Memory.Purge(ctx)
			if err != nil {
				log.Error().Err(err).Msg("[memory] purge failed")
				continue
			}
			if n > 0 {
				log.Info().Int64("deleted", n).Msg("[memory] purged expired translations")
			}
		}
	}
}

func (a *App) Close() {
	if a.Publisher != nil {
		a.Publisher.Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if db.DB != nil {
		_ = db.DB.Close()
	}
}
