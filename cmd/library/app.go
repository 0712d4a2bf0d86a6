package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/library-lending-go/lendingstore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/lendingstore/oteladapters"
	"github.com/AntonStoeckl/library-lending-go/lendingstore/postgresengine"
	"github.com/AntonStoeckl/library-lending-go/lendingstore/promadapters"
	"github.com/AntonStoeckl/library-lending-go/lendingstore/zapadapters"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/blob"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/config"
)

const serviceName = "library-lending"

// app holds what every subcommand needs: the resolved config, the store and the
// observability adapters. Subcommands call open and the root command closes.
type app struct {
	cfg     config.FileConfig
	flags   globalFlags
	stdout  io.Writer
	stderr  io.Writer
	printer printer

	store   shell.LendingStore
	blobs   blob.Store
	closers []func() error

	logger    logger
	metrics   shell.MetricsCollector
	tracing   shell.TracingCollector
	prom      *promadapters.MetricsCollector
	providers *config.ObservabilityProviders
}

// logger is what both the slog and the zap adapters implement.
type logger interface {
	shell.Logger
	shell.ContextualLogger
}

type globalFlags struct {
	configPath string
	engine     string
	adapter    string
	dsn        string
	sqlitePath string
	logFormat  string
	logLevel   string
	output     string
	today      string
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

// configure resolves the config file, LIBRARY_* env vars and flags, in that order.
func (a *app) configure(changed func(name string) bool) error {
	cfg, err := config.LoadFileConfig(a.flags.configPath)
	if err != nil {
		return err
	}

	if err = cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	override := func(flag string, value string, target *string) {
		if changed(flag) {
			*target = value
		}
	}
	override(flagEngine, a.flags.engine, &cfg.DB.Engine)
	override(flagAdapter, a.flags.adapter, &cfg.DB.Adapter)
	override(flagDSN, a.flags.dsn, &cfg.DB.DSN)
	override(flagSQLitePath, a.flags.sqlitePath, &cfg.DB.SQLitePath)
	override(flagLogFormat, a.flags.logFormat, &cfg.Log.Format)
	override(flagLogLevel, a.flags.logLevel, &cfg.Log.Level)

	if err = cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.printer = newPrinter(a.stdout, a.flags.output == outputJSON)

	return nil
}

// now is the clock of all commands. --today pins it to noon UTC of the given day.
func (a *app) now() (time.Time, error) {
	if a.flags.today == "" {
		return time.Now().UTC(), nil
	}

	day, err := core.ParseDate(a.flags.today)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --today %q is not a date", core.ErrValidation, a.flags.today)
	}

	return day.Add(12 * time.Hour), nil
}

// open builds the logger, the observability collectors and the store.
func (a *app) open(ctx context.Context) error {
	if a.store != nil {
		return nil
	}

	if err := a.openLogger(); err != nil {
		return err
	}

	if err := a.openObservability(ctx); err != nil {
		return err
	}

	return a.openStore(ctx)
}

func (a *app) openLogger() error {
	if a.cfg.Observability.Enabled() && a.cfg.Log.Format != config.LogFormatZap {
		a.logger = oteladapters.NewSlogBridgeLogger(serviceName)
		return nil
	}

	switch a.cfg.Log.Format {
	case config.LogFormatZap:
		zapLogger, err := zapadapters.NewProductionLogger(a.cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("%w: log level %q", config.ErrInvalidConfigValue, a.cfg.Log.Level)
		}
		a.logger = zapLogger
		a.closers = append(a.closers, func() error {
			_ = zapLogger.Sync() // stderr cannot be synced on some platforms
			return nil
		})

	case config.LogFormatJSON:
		a.logger = oteladapters.NewSlogBridgeLoggerWithHandler(
			slog.NewJSONHandler(a.stderr, &slog.HandlerOptions{Level: slogLevel(a.cfg.Log.Level)}))

	default:
		a.logger = oteladapters.NewSlogBridgeLoggerWithHandler(
			slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: slogLevel(a.cfg.Log.Level)}))
	}

	return nil
}

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openObservability prefers a Prometheus collector set up by serve over OTLP export.
func (a *app) openObservability(ctx context.Context) error {
	if a.prom != nil {
		a.metrics = a.prom
	}

	if !a.cfg.Observability.Enabled() {
		return nil
	}

	providers, err := config.NewObservabilityProviders(ctx, a.cfg.Observability)
	if err != nil {
		return err
	}

	a.providers = providers
	a.closers = append(a.closers, providers.Shutdown)
	a.tracing = providers.TracingCollector()

	if a.metrics == nil {
		a.metrics = providers.MetricsCollector()
	}

	return nil
}

func (a *app) engineOptions() []postgresengine.Option {
	options := []postgresengine.Option{postgresengine.WithContextualLogger(a.logger)}

	if a.cfg.DB.TablePrefix != "" {
		options = append(options, postgresengine.WithTablePrefix(a.cfg.DB.TablePrefix))
	}

	if a.metrics != nil {
		options = append(options, postgresengine.WithMetrics(a.metrics))
	}

	if a.tracing != nil {
		options = append(options, postgresengine.WithTracing(a.tracing))
	}

	return options
}

func (a *app) openStore(ctx context.Context) error {
	switch a.cfg.DB.Engine {
	case config.EngineMemory:
		store, err := memoryengine.NewStore(memoryengine.WithLogger(a.logger))
		if err != nil {
			return err
		}
		a.store = store

		return nil

	case config.EngineSQLite:
		db, err := config.SQLiteDB(ctx, a.cfg.DB.SQLitePath)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, db.Close)

		return a.useSQLStore(ctx, func() (*postgresengine.Store, error) {
			return postgresengine.NewStoreFromSQLite(db, a.engineOptions()...)
		})

	default:
		return a.openPostgres(ctx)
	}
}

func (a *app) openPostgres(ctx context.Context) error {
	switch a.cfg.DB.Adapter {
	case config.AdapterSQL:
		db, err := config.PostgresSQLDB(ctx, a.cfg.DB.DSN)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, db.Close)

		return a.useSQLStore(ctx, func() (*postgresengine.Store, error) {
			return postgresengine.NewStoreFromSQLDB(db, a.engineOptions()...)
		})

	case config.AdapterSQLX:
		db, err := config.PostgresSQLX(ctx, a.cfg.DB.DSN)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, db.Close)

		return a.useSQLStore(ctx, func() (*postgresengine.Store, error) {
			return postgresengine.NewStoreFromSQLX(db, a.engineOptions()...)
		})

	default:
		primary, err := a.pgxPool(ctx, a.cfg.DB.DSN)
		if err != nil {
			return err
		}

		if a.cfg.DB.ReplicaDSN == "" {
			return a.useSQLStore(ctx, func() (*postgresengine.Store, error) {
				return postgresengine.NewStoreFromPGXPool(primary, a.engineOptions()...)
			})
		}

		replica, err := a.pgxPool(ctx, a.cfg.DB.ReplicaDSN)
		if err != nil {
			return err
		}

		return a.useSQLStore(ctx, func() (*postgresengine.Store, error) {
			return postgresengine.NewStoreFromPGXPoolAndReplica(primary, replica, a.engineOptions()...)
		})
	}
}

func (a *app) pgxPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := config.PostgresPGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Join(config.ErrOpeningDatabaseFailed, err)
	}
	a.closers = append(a.closers, func() error {
		pool.Close()
		return nil
	})

	if err = pool.Ping(ctx); err != nil {
		return nil, errors.Join(config.ErrOpeningDatabaseFailed, err)
	}

	return pool, nil
}

// useSQLStore creates the engine and makes sure its tables exist. The memory engine
// needs no schema, every SQL database gets it on first use.
func (a *app) useSQLStore(ctx context.Context, create func() (*postgresengine.Store, error)) error {
	store, err := create()
	if err != nil {
		return err
	}

	if err = store.CreateSchema(ctx); err != nil {
		return err
	}

	a.store = store

	return nil
}

// openBlobStore opens the report store once, so a memory backend keeps its reports
// for the lifetime of the process.
func (a *app) openBlobStore(ctx context.Context) (blob.Store, error) {
	if a.blobs != nil {
		return a.blobs, nil
	}

	blobs, err := blob.Open(ctx, a.cfg.Blob)
	if err != nil {
		return nil, err
	}
	a.blobs = blobs

	return blobs, nil
}

// close releases everything open acquired, in reverse order.
func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	a.store = nil

	return errors.Join(errs...)
}
