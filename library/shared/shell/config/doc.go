// Package config provides the connection and provider factories of the library lending
// application.
//
// It creates database handles for the supported drivers (pgxpool.Pool, sql.DB with lib/pq,
// sqlx.DB and an embedded SQLite sql.DB), OpenTelemetry providers exporting via OTLP/gRPC,
// the blob storage settings for report exports, and the YAML file configuration that the
// CLI reads and overrides with LIBRARY_* environment variables.
//
// This package is part of the shell (infrastructure) layer.
package config
