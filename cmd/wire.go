package cmd

import (
	"fmt"
	"time"

	"scene-toolkit/core/config"
	"scene-toolkit/core/database"
	"scene-toolkit/core/fetch"
	"scene-toolkit/core/logger"
	"scene-toolkit/core/storage"
	"scene-toolkit/feature/assets"
	"scene-toolkit/feature/audio"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// env is what every command builds from the configuration.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	storage storage.Client
	db      *gorm.DB
	redis   *redis.Client
}

// setup loads the configuration and opens the shared clients. The database is
// optional unless requireDB is set.
func setup(requireDB bool) (*env, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	e := &env{cfg: cfg, logger: logg, storage: client}

	if db, err := openDatabase(cfg.Database); err != nil {
		if requireDB {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		e.db = db
		logg.Info("Connected to manifest database", zap.String("driver", cfg.Database.Driver))
	}

	if cfg.Cache.RedisAddr != "" {
		e.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	}

	return e, nil
}

// close releases the clients opened by setup.
func (e *env) close() {
	if e.redis != nil {
		_ = e.redis.Close()
	}
	if e.db != nil {
		if sqlDB, err := e.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = e.logger.Sync()
}

// store returns the manifest store, or nil without a database.
func (e *env) store() *assets.ManifestStore {
	if e.db == nil {
		return nil
	}
	return assets.NewManifestStore(e.db)
}

func openDatabase(cfg database.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := assets.NewManifestStore(db).Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate manifest store: %w", err)
	}
	return db, nil
}

// fetcher builds the URL fetcher: file paths by default, http(s) and s3 by
// scheme, behind the redis and memory caches when configured.
func (e *env) fetcher() fetch.Fetcher {
	loader := e.cfg.Loader
	files := fetch.NewFileFetcher(afero.NewOsFs(), loader.BaseDir)

	timeout := time.Duration(loader.HTTPTimeoutSeconds) * time.Second
	var f fetch.Fetcher = fetch.NewRouter(files,
		fetch.WithRoute("http", fetch.NewHTTPFetcher(timeout)),
		fetch.WithRoute("s3", fetch.NewStorageFetcher(e.storage, e.cfg.Storage.Bucket)),
		fetch.WithLogger(e.logger),
		fetch.WithFetchTimeout(timeout),
	)

	if e.redis != nil {
		f = fetch.NewRedisCache(f, e.redis,
			fetch.WithRedisPrefix(e.cfg.Cache.RedisPrefix),
			fetch.WithRedisTTL(e.cfg.Cache.RedisTTL()),
			fetch.WithRedisLogger(e.logger),
		)
	}
	if ttl := e.cfg.Cache.MemoryTTL(); ttl > 0 {
		f = fetch.NewMemoryCache(f, ttl)
	}
	return f
}

// assetService builds the pipeline and the service around it.
func (e *env) assetService() (*assets.Service, error) {
	pipeline, err := assets.NewPipeline(e.cfg.Loader, e.fetcher(), assets.NewRegistries(), e.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset pipeline: %w", err)
	}
	return assets.NewService(pipeline, e.store(), e.logger), nil
}

// audioDevice opens the configured output device. A speaker that fails to open
// falls back to the null device.
func (e *env) audioDevice() (audio.Device, error) {
	switch e.cfg.Audio.Device {
	case "", "null":
		return audio.NullDevice{}, nil
	case "beep", "speaker":
		buffer := time.Duration(e.cfg.Audio.BufferMillis) * time.Millisecond
		dev, err := audio.NewBeepDevice(e.cfg.Audio.SampleRate, buffer)
		if err != nil {
			e.logger.Warn("Audio device unavailable, playing silently", zap.Error(err))
			return audio.NullDevice{}, nil
		}
		return dev, nil
	default:
		return nil, fmt.Errorf("unknown audio device %q", e.cfg.Audio.Device)
	}
}
