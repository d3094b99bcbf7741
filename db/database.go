package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"lexdesk/logger"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options selects the database the gateway binds to
type Options struct {
	// Path of the embedded database file, or a full sqlite DSN (file:...?mode=memory)
	Path string
	// TursoURL, when set, is used instead of Path through the libsql driver
	TursoURL   string
	TursoToken string
	// Environment controls gorm's log level
	Environment string
}

// Gateway is the single entry point to the embedded database.
// Every operation checks out its own connection and releases it when done.
type Gateway struct {
	db *gorm.DB
}

// Open connects to the database file (or libsql remote) described by opts
func Open(opts Options) (*Gateway, error) {
	logLevel := gormlogger.Warn
	if opts.Environment == "production" {
		logLevel = gormlogger.Silent
	}
	gormCfg := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(logLevel),
		PrepareStmt: false,
	}

	var dialector gorm.Dialector
	switch {
	case opts.TursoURL != "":
		dsn := opts.TursoURL
		if opts.TursoToken != "" {
			dsn += "?authToken=" + opts.TursoToken
		}
		dialector = sqlite.New(sqlite.Config{DriverName: "libsql", DSN: dsn})
	case opts.Path != "":
		dsn, err := fileDSN(opts.Path)
		if err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("no database path configured")
	}

	gdb, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// Embedded sqlite is single-writer; one connection at a time
	sqlDB.SetMaxOpenConns(1)

	logger.L().Infow("database connection established", "path", opts.Path, "remote", opts.TursoURL != "")
	return &Gateway{db: gdb}, nil
}

// fileDSN ensures the parent directory of a plain file path exists and appends driver options
func fileDSN(path string) (string, error) {
	if len(path) >= 5 && path[:5] == "file:" {
		return path, nil
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return path + "?_busy_timeout=5000&_foreign_keys=off", nil
}

// Acquire checks out one dedicated connection, runs fn with it and releases the
// connection on every exit path. Statements run in autocommit mode, and each
// query chained off conn starts from an empty statement.
func (g *Gateway) Acquire(ctx context.Context, fn func(conn *gorm.DB) error) error {
	if g == nil || g.db == nil {
		return fmt.Errorf("database not initialized")
	}
	return g.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(fresh(conn))
	})
}

// Transaction runs fn inside an explicit transaction on a dedicated connection.
// Only operations that must write two resources together use it.
func (g *Gateway) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if g == nil || g.db == nil {
		return fmt.Errorf("database not initialized")
	}
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(fresh(tx))
	}, &sql.TxOptions{})
}

// fresh keeps conn's pool and context but drops any statement state, so
// consecutive queries on it do not inherit each other's model or conditions
func fresh(conn *gorm.DB) *gorm.DB {
	return conn.Session(&gorm.Session{NewDB: true})
}

// DB exposes the underlying handle for migrations and tests
func (g *Gateway) DB() *gorm.DB {
	return g.db
}

// Close closes the database connection
func (g *Gateway) Close() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
