// Package postgres wires pgx connection pooling, transactions, and schema
// migrations for services that keep their state in PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool tuning applied when the caller leaves the limits unset.
const (
	defaultMaxConnLifetime = time.Hour
	defaultMaxConnIdleTime = 30 * time.Minute
)

// Config describes a PostgreSQL endpoint and the pool limits to apply.
type Config struct {
	Host     string
	User     string
	Password string
	Database string

	// SSLMode is passed through to the DSN. Empty means "require".
	SSLMode string

	// AppName, when set, shows up in pg_stat_activity.application_name so
	// operators can tell which service holds which connections.
	AppName string

	Port     int
	MaxConns int32
	MinConns int32
}

// DSN renders the config as a postgres:// URL. Credentials are URL-escaped,
// so passwords containing '@' or '/' survive the round trip.
func (c Config) DSN() string {
	q := url.Values{}
	mode := c.SSLMode
	if mode == "" {
		mode = "require"
	}
	q.Set("sslmode", mode)
	if c.AppName != "" {
		q.Set("application_name", c.AppName)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// NewPool opens a pgx pool against cfg and verifies the endpoint answers a
// ping before handing the pool back. Callers own the returned pool and must
// Close it on shutdown.
func NewPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	poolCfg.MaxConnLifetime = defaultMaxConnLifetime
	poolCfg.MaxConnIdleTime = defaultMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return pool, nil
}

// HealthCheck reports whether the database still answers over the pool.
// Readiness probes call this on every poll.
func HealthCheck(ctx context.Context, pool *pgxpool.Pool) error {
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check: %w", err)
	}
	return nil
}
