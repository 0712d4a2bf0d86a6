package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage engines.
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineMemory   = "memory"
)

// Postgres client adapters.
const (
	AdapterPGX  = "pgx"
	AdapterSQL  = "sql"
	AdapterSQLX = "sqlx"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
	LogFormatZap  = "zap"
)

// FileConfig is the YAML configuration of the CLI.
type FileConfig struct {
	DB            DBConfig            `yaml:"db"`
	Blob          BlobConfig          `yaml:"blob"`
	Sweep         SweepConfig         `yaml:"sweep"`
	Log           LogConfig           `yaml:"log"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// DBConfig selects the storage engine and how to reach it.
type DBConfig struct {
	Engine      string `yaml:"engine"`
	Adapter     string `yaml:"adapter"`
	DSN         string `yaml:"dsn"`
	ReplicaDSN  string `yaml:"replica_dsn"`
	SQLitePath  string `yaml:"sqlite_path"`
	TablePrefix string `yaml:"table_prefix"`
}

// SweepConfig controls the periodic overdue sweep of the serve command.
type SweepConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// LogConfig controls the logger the CLI builds.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultFileConfig is used when no config file is given.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		DB: DBConfig{
			Engine:     EngineSQLite,
			Adapter:    AdapterPGX,
			SQLitePath: "library.db",
		},
		Blob:  DefaultBlobConfig(),
		Sweep: SweepConfig{Interval: time.Hour},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatText,
		},
		Observability: ObservabilityConfig{
			MetricsAddr: ":9090",
		},
	}
}

// LoadFileConfig reads the YAML file at path on top of DefaultFileConfig.
// An empty path yields the defaults.
func LoadFileConfig(path string) (FileConfig, error) {
	cfg := DefaultFileConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, errors.Join(ErrReadingConfigFileFailed, err)
	}

	if err = yaml.Unmarshal(raw, &cfg); err != nil {
		return FileConfig{}, errors.Join(ErrReadingConfigFileFailed, err)
	}

	return cfg, nil
}

// ApplyEnv overrides values from LIBRARY_* environment variables.
func (c *FileConfig) ApplyEnv(lookup LookupFunc) error {
	overrideString(lookup, "LIBRARY_DB_ENGINE", &c.DB.Engine)
	overrideString(lookup, "LIBRARY_DB_ADAPTER", &c.DB.Adapter)
	overrideString(lookup, "LIBRARY_DB_DSN", &c.DB.DSN)
	overrideString(lookup, "LIBRARY_DB_REPLICA_DSN", &c.DB.ReplicaDSN)
	overrideString(lookup, "LIBRARY_SQLITE_PATH", &c.DB.SQLitePath)
	overrideString(lookup, "LIBRARY_TABLE_PREFIX", &c.DB.TablePrefix)
	overrideString(lookup, "LIBRARY_LOG_LEVEL", &c.Log.Level)
	overrideString(lookup, "LIBRARY_LOG_FORMAT", &c.Log.Format)
	overrideString(lookup, "LIBRARY_OTLP_ENDPOINT", &c.Observability.OTLPEndpoint)
	overrideString(lookup, "LIBRARY_METRICS_ADDR", &c.Observability.MetricsAddr)

	if raw, ok := lookup("LIBRARY_SWEEP_INTERVAL"); ok && raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%w: LIBRARY_SWEEP_INTERVAL=%q", ErrInvalidConfigValue, raw)
		}
		c.Sweep.Interval = interval
	}

	return c.Blob.applyEnv(lookup)
}

// Validate checks the combination of engine, adapter and connection settings.
func (c FileConfig) Validate() error {
	switch c.DB.Engine {
	case EngineMemory:
	case EngineSQLite:
		if c.DB.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path is required for the sqlite engine", ErrInvalidConfigValue)
		}
	case EnginePostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%w: dsn is required for the postgres engine", ErrInvalidConfigValue)
		}
		switch c.DB.Adapter {
		case AdapterPGX, AdapterSQL, AdapterSQLX:
		default:
			return fmt.Errorf("%w: unknown adapter %q", ErrInvalidConfigValue, c.DB.Adapter)
		}
		if c.DB.ReplicaDSN != "" && c.DB.Adapter != AdapterPGX {
			return fmt.Errorf("%w: replica_dsn is only supported with the pgx adapter", ErrInvalidConfigValue)
		}
	default:
		return fmt.Errorf("%w: unknown engine %q", ErrInvalidConfigValue, c.DB.Engine)
	}

	switch c.Log.Format {
	case LogFormatText, LogFormatJSON, LogFormatZap:
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfigValue, c.Log.Format)
	}

	if c.Sweep.Interval <= 0 {
		return fmt.Errorf("%w: sweep interval must be positive", ErrInvalidConfigValue)
	}

	return c.Blob.Validate()
}
