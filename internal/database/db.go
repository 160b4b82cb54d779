// Package database opens the MySQL history store and applies its migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/verbdrill/internal/config"
)

// managedParams are DSN parameters the attempt repository depends on.
// They cannot be overridden through database.params.
var managedParams = []string{"loc", "parseTime", "multiStatements"}

// newMySQLConfig builds the driver configuration. answered_at is read and written in UTC,
// and each migration statement is sent on its own.
func newMySQLConfig(cfg config.DatabaseConfig) *mysql.Config {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mysqlCfg.DBName = cfg.Database
	mysqlCfg.User = cfg.Username
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.ParseTime = true
	mysqlCfg.Loc = time.UTC
	mysqlCfg.MultiStatements = false
	if cfg.TLS {
		mysqlCfg.TLSConfig = "true"
	}

	for key, value := range cfg.Params {
		if slices.Contains(managedParams, key) {
			slog.Default().Warn("ignoring a managed database parameter", "param", key)
			continue
		}
		if mysqlCfg.Params == nil {
			mysqlCfg.Params = make(map[string]string, len(cfg.Params))
		}
		mysqlCfg.Params[key] = value
	}
	return mysqlCfg
}

// Open opens the history database. The connection is established lazily on first use.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	connector, err := mysql.NewConnector(newMySQLConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("mysql.NewConnector() > %w", err)
	}
	db := sqlx.NewDb(sql.OpenDB(connector), "mysql")

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	return db, nil
}

// RunInTx runs fn in a transaction. It commits when fn succeeds and rolls back otherwise.
func RunInTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx.Rollback() > %w (after %v)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}
