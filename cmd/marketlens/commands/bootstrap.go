package commands

import (
	"fmt"

	"github.com/ivalero/marketlens/internal/catalog"
	"github.com/ivalero/marketlens/internal/provider/yahoo"
	"github.com/ivalero/marketlens/internal/refresh"
	"github.com/ivalero/marketlens/internal/store"
	"github.com/ivalero/marketlens/pkg/config"
	"github.com/ivalero/marketlens/pkg/database"
	"github.com/ivalero/marketlens/pkg/logger"
	"github.com/ivalero/marketlens/pkg/redis"
)

// app bundles the wiring every command needs: config, logger, the
// database pool, Redis, one store per market and the refresh
// controller on top of them.
type app struct {
	cfg        *config.Config
	log        *logger.Logger
	db         *database.DB
	redis      *redis.Client
	cache      *redis.Cache
	stores     map[string]*store.Store
	controller *refresh.Controller
}

// newApp loads config and connects everything. Callers must Close.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	if verbose {
		cfg.LogLevel = "debug"
		log = logger.New(cfg)
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "marketlens")

	provider := yahoo.NewClient(cfg, log)

	stores := make(map[string]*store.Store)
	marketStores := make(map[string]refresh.MarketStore)
	for _, market := range catalog.Markets() {
		st := store.New(db, market, log)
		stores[market.ID] = st
		marketStores[market.ID] = st
	}

	meta := refresh.NewMetaStore(cache)
	controller := refresh.NewController(cfg, provider, marketStores, meta, cache, log)

	return &app{
		cfg:        cfg,
		log:        log,
		db:         db,
		redis:      redisClient,
		cache:      cache,
		stores:     stores,
		controller: controller,
	}, nil
}

func (a *app) Close() {
	a.db.Close()
	if err := a.redis.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close Redis client")
	}
}
