// Package store persists station datasets, graphs and zone runs in SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"farezone.transit.org/internal/appconf"
	"farezone.transit.org/internal/logging"
)

//go:embed schema.sql
var ddl string

// ErrRunNotFound is returned when a run id has no stored results.
var ErrRunNotFound = errors.New("run not found")

// Config holds the options for Open.
type Config struct {
	DBPath string
	Env    appconf.Environment
	Logger *slog.Logger
}

// Store wraps the database handle. Writes are serialized.
type Store struct {
	DB      *sql.DB
	logger  *slog.Logger
	writeMu sync.Mutex
}

// Open opens the database at config.DBPath and creates the schema.
func Open(ctx context.Context, config Config) (*Store, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("refusing to open %s in the test environment", config.DBPath)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		logging.SafeCloseWithLogging(db, logger, "database")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{DB: db, logger: logger}
	if err := s.migrate(ctx); err != nil {
		logging.SafeCloseWithLogging(db, logger, "database")
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	logging.LogOperation(logger, "database_opened", slog.String("path", config.DBPath))
	return s, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) migrate(ctx context.Context) (err error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer logging.SafeRollbackWithLogging(tx, s.logger, "schema migration")

	for _, stmt := range strings.Split(ddl, "-- migrate") {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, trimmed); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmed, err)
		}
	}
	return tx.Commit()
}

// withTx runs fn in a write transaction.
func (s *Store) withTx(ctx context.Context, operation string, fn func(*sql.Tx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, s.logger, operation)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
