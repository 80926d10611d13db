// Package store reads the pre-computed ledger aggregates out of PostgreSQL.
//
// The indexer that populates these tables is a separate process; this
// package only runs read queries and converts the raw figures into the
// model types. The *sql.DB pool is safe for the concurrent fetches issued
// per request.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/sirupsen/logrus"

	"shielded-stats-backend/internal/logger"
)

// Config holds the PostgreSQL connection settings.
type Config struct {
	// URL is a lib/pq connection string or postgres:// URL.
	URL string
	// ApproximateDepositors switches the depositor count from an exact
	// COUNT(DISTINCT ...) to a HyperLogLog estimate, which is much cheaper
	// on large transfer tables.
	ApproximateDepositors bool

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store is a handle on the aggregate database. It is cheap to share: all
// state lives in the internally synchronized connection pool.
type Store struct {
	db               *sql.DB
	approxDepositors bool
	log              *logrus.Entry
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{
		db:               db,
		approxDepositors: cfg.ApproximateDepositors,
		log:              logger.WithComponent("store"),
	}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
