package config

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultPoolMaxConnections    = int32(8)
	defaultPoolMinConnections    = int32(2)
	defaultPoolMaxConnLifetime   = time.Hour
	defaultPoolMaxConnIdleTime   = time.Minute * 5
	defaultPoolHealthCheckPeriod = time.Minute
	defaultPoolConnectTimeout    = time.Second * 5
)

// PostgresPGXPoolConfig creates a pgxpool.Config for the given DSN with the pool settings
// the command and query handlers are tuned for.
func PostgresPGXPoolConfig(dsn string) (*pgxpool.Config, error) {
	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrInvalidDSN, err)
	}

	dbConfig.MaxConns = defaultPoolMaxConnections
	dbConfig.MinConns = defaultPoolMinConnections
	dbConfig.MaxConnLifetime = defaultPoolMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultPoolMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultPoolHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultPoolConnectTimeout

	return dbConfig, nil
}
