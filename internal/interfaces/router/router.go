package router

import (
	"context"
	"time"

	"ryzer-backend/internal/application/assetevents"
	"ryzer-backend/internal/application/catalog"
	"ryzer-backend/internal/application/ledger"
	portfoliosvc "ryzer-backend/internal/application/portfolio"
	tradesvc "ryzer-backend/internal/application/trading"
	"ryzer-backend/internal/config"
	"ryzer-backend/internal/infrastructure/database"
	assethandler "ryzer-backend/internal/interfaces/handlers/assets"
	healthhandler "ryzer-backend/internal/interfaces/handlers/health"
	portfoliohandler "ryzer-backend/internal/interfaces/handlers/portfolio"
	tradehandler "ryzer-backend/internal/interfaces/handlers/trading"
	txhandler "ryzer-backend/internal/interfaces/handlers/transactions"
	"ryzer-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp wires storage, services, middleware and routes. The returned DB
// and Redis client (nil when REDIS_URL is unset) are owned by the caller.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	valuer, err := portfoliosvc.NewValuer(cfg.ValuationMode, cfg.ValuationMaxNoise)
	if err != nil {
		return nil, nil, nil, err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		closeRedis(rdb)
		return nil, nil, nil, err
	}
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL not set, using in-memory store")
	}

	ctx := context.Background()
	assets := &catalog.Service{DB: db}
	if err := assets.Seed(ctx, catalog.DefaultAssets()); err != nil {
		closeRedis(rdb)
		return nil, nil, nil, err
	}

	entries := &ledger.Service{DB: db}
	ah := &assethandler.Handlers{Catalog: assets, Events: &assetevents.Service{DB: db}}
	th := &tradehandler.Handlers{Service: &tradesvc.Service{DB: db}}
	xh := &txhandler.Handlers{Ledger: entries}
	ph := &portfoliohandler.Handlers{Service: &portfoliosvc.Service{Ledger: entries, Valuer: valuer}}
	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             &gormDBPinger{db: db},
		HealthAdminKey: cfg.HealthAdminKey,
		Started:        time.Now(),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedSuffix:  cfg.FrontendURLEndsWith,
		DevPassword:    cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.HealthMarker(rdb))

	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/health/reset", hh.Reset)

	app.Get("/assets", ah.ListAssets)
	app.Get("/assets/:id", ah.GetAsset)
	app.Get("/assets/:id/events", ah.ListEvents)
	app.Post("/buy", th.Buy)
	app.Get("/transactions", xh.GetTransactions)
	app.Get("/portfolio", ph.GetPortfolio)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})

	return app, db, rdb, nil
}

func closeRedis(rdb *redis.Client) {
	if rdb != nil {
		_ = rdb.Close()
	}
}
