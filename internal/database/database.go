// Package database opens the connection pool for the configured driver.
//
// Postgres goes through pgxpool (with New Relic and pgx-zerolog tracing);
// MySQL and SQLite go through database/sql. Exactly one of Pool or SQL is
// set on a Database.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/deppfellow/zombies/internal/config"
	loggerConfig "github.com/deppfellow/zombies/internal/logger"
	"github.com/go-sql-driver/mysql"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

// Database wraps whichever pool the driver needs.
type Database struct {
	// Driver is one of config.DriverPostgres, DriverMySQL, DriverSQLite.
	Driver string

	// Pool is set for postgres.
	Pool *pgxpool.Pool

	// SQL is set for mysql and sqlite.
	SQL *sql.DB

	log *zerolog.Logger
}

// multiTracer fans pgx trace callbacks out to several tracers (New Relic
// and the local query logger).
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		ctx = tracer.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		tracer.TraceQueryEnd(ctx, conn, data)
	}
}

// DatabasePingTimeout is in seconds.
const DatabasePingTimeout = 10

// New opens the pool for cfg.Database.Driver and pings it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	var (
		db  *Database
		err error
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err = newPostgres(cfg, logger, loggerService)
	case config.DriverMySQL, config.DriverSQLite:
		db, err = newSQL(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", db.Driver).Msg("connected to the database")

	return db, nil
}

// PostgresDSN builds a postgres:// URL; the password is query-escaped.
func PostgresDSN(cfg config.DatabaseConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.User,
		url.QueryEscape(cfg.Password),
		hostPort,
		cfg.Name,
		cfg.SSLMode,
	)
}

// MySQLDSN builds a go-sql-driver DSN.
func MySQLDSN(cfg config.DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	applyMySQLOptions(mc)
	return mc.FormatDSN()
}

// NormalizeMySQLDSN applies the connection options the repositories rely
// on to a hand-written DSN.
func NormalizeMySQLDSN(dsn string) (string, error) {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	applyMySQLOptions(mc)
	return mc.FormatDSN(), nil
}

// applyMySQLOptions makes RowsAffected count matched rows, like Postgres
// and SQLite do. Without it, eating an already eaten person reports zero
// rows and reads as "no such person".
func applyMySQLOptions(mc *mysql.Config) {
	mc.ParseTime = true
	mc.ClientFoundRows = true
}

// SQLiteDSN turns a file path into a modernc DSN with foreign keys on.
// Pragmas go in the DSN because they are per connection.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
}

func newPostgres(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(PostgresDSN(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// Local runs print every query.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	return &Database{
		Driver: config.DriverPostgres,
		Pool:   pool,
		log:    logger,
	}, nil
}

func newSQL(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	var driverName, dsn string

	switch cfg.Database.Driver {
	case config.DriverMySQL:
		driverName, dsn = "mysql", MySQLDSN(cfg.Database)
	case config.DriverSQLite:
		driverName, dsn = "sqlite", SQLiteDSN(cfg.Database.Path)
	}

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driverName, err)
	}

	if cfg.Database.Driver == config.DriverSQLite {
		// One writer at a time. The single connection is never recycled:
		// a ":memory:" database lives and dies with its connection.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)
	}

	return &Database{
		Driver: cfg.Database.Driver,
		SQL:    sqlDB,
		log:    logger,
	}, nil
}

// Ping checks connectivity on whichever pool is open.
func (db *Database) Ping(ctx context.Context) error {
	if db.Pool != nil {
		return db.Pool.Ping(ctx)
	}
	return db.SQL.PingContext(ctx)
}

// Close releases the pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")

	if db.Pool != nil {
		db.Pool.Close()
		return nil
	}
	return db.SQL.Close()
}
