package database

import (
	"context"
	"time"

	"ryzer-backend/internal/domain"

	"github.com/cenkalti/backoff/v4"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN (Postgres or a pooler URL).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers (e.g. PgBouncer).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// OpenMemory opens a private in-memory SQLite database that lives as long as
// the returned handle. The pool is pinned to one connection: every new
// connection to ":memory:" would be a different, empty database, and a single
// connection also means readers never observe an uncommitted write.
func OpenMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	return db, nil
}

// ConnectTimeout bounds how long Connect keeps retrying an unreachable Postgres.
var ConnectTimeout = 30 * time.Second

// OpenWithRetry opens Postgres, retrying with exponential backoff until
// maxElapsed passes or ctx is done.
func OpenWithRetry(ctx context.Context, dsn string, maxElapsed time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	err := retry(ctx, maxElapsed, func() error {
		var err error
		db, err = Open(dsn)
		return err
	})
	return db, err
}

func retry(ctx context.Context, maxElapsed time.Duration, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = maxElapsed

	attempt := 0
	notify := func(err error, next time.Duration) {
		attempt++
		log.Warn().Err(err).Int("attempt", attempt).Dur("next_retry_in", next).Msg("Database not reachable, retrying")
	}
	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
}

// Connect picks Postgres when a DSN is configured and falls back to the
// in-memory store otherwise, then migrates the schema.
func Connect(dsn string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	if dsn != "" {
		db, err = OpenWithRetry(context.Background(), dsn, ConnectTimeout)
	} else {
		db, err = OpenMemory()
	}
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate runs migrations for the catalog, the ledger and the asset audit trail.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Asset{}, &domain.Transaction{}, &domain.AssetEvent{})
}
