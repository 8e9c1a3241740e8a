package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"academy-service/internal/config"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// New opens and pings the store selected by cfg.Driver, then sizes the pool.
func New(cfg config.DatabaseConfig) (*bun.DB, error) {
	var (
		db  *bun.DB
		err error
	)

	switch cfg.Driver {
	case DriverSQLite:
		db, err = NewSQLite(cfg.Path)
	case DriverPostgres, "":
		db, err = NewWithDSN(PostgresDSN(cfg))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	configurePool(db, cfg)
	return db, nil
}

func PostgresDSN(cfg config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		sslMode,
	)
}

// NewWithDSN connects to postgres with a custom DSN (useful for testing)
func NewWithDSN(dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	slog.Info("database connected successfully", "driver", DriverPostgres)
	return db, nil
}

// NewSQLite opens an embedded database. Foreign keys must be switched on in
// the DSN (_fk=1) for cascades to work.
func NewSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	slog.Info("database connected successfully", "driver", DriverSQLite)
	return db, nil
}

func configurePool(db *bun.DB, cfg config.DatabaseConfig) {
	sqlDB := db.DB

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 25
	}
	sqlDB.SetMaxOpenConns(maxOpen)

	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 10
	}
	sqlDB.SetMaxIdleConns(maxIdle)

	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime == 0 {
		connMaxLifetime = 300
	}
	sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Second)

	connMaxIdleTime := cfg.ConnMaxIdleTime
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 60
	}
	sqlDB.SetConnMaxIdleTime(time.Duration(connMaxIdleTime) * time.Second)

	slog.Info("database pool configured",
		"max_open_conns", maxOpen,
		"max_idle_conns", maxIdle,
		"conn_max_lifetime_seconds", connMaxLifetime,
		"conn_max_idle_time_seconds", connMaxIdleTime,
	)
}

func Close(db *bun.DB) {
	if db != nil {
		db.Close()
	}
}

// ForeignKeyer is implemented by models whose table references another one.
// Each entry is the raw clause passed to CREATE TABLE ... FOREIGN KEY.
type ForeignKeyer interface {
	ForeignKeys() []string
}

// Index describes a secondary index created after the table.
type Index struct {
	Name    string
	Columns []string
}

type Indexer interface {
	Indexes() []Index
}

// RunMigrations creates the tables (and their indexes) for models in order,
// so referenced tables must come first.
func RunMigrations(ctx context.Context, db *bun.DB, models ...interface{}) error {
	for _, model := range models {
		q := db.NewCreateTable().
			Model(model).
			IfNotExists()

		if fk, ok := model.(ForeignKeyer); ok {
			for _, clause := range fk.ForeignKeys() {
				q = q.ForeignKey(clause)
			}
		}

		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for model: %w", err)
		}

		idx, ok := model.(Indexer)
		if !ok {
			continue
		}
		for _, index := range idx.Indexes() {
			_, err := db.NewCreateIndex().
				Model(model).
				Index(index.Name).
				Column(index.Columns...).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create index %s: %w", index.Name, err)
			}
		}
	}
	slog.Info("database migrations completed successfully")
	return nil
}
