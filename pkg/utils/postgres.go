package utils

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Pool bounds for a single API process. Each org's traffic is light and the
// handlers hold connections only for the duration of one query, so the pool
// stays small; deployments raise the limits through DB_* env vars.
const (
	defaultMaxOpenConns = 20
	defaultMaxIdleConns = 10
	defaultConnLifetime = 30 * time.Minute
	connIdleTimeout     = 5 * time.Minute
	connectPingTimeout  = 5 * time.Second
)

// PoolSettings sizes the database/sql connection pool. Zero fields fall back
// to the package defaults, so callers only set what they override.
type PoolSettings struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (s PoolSettings) normalized() PoolSettings {
	if s.MaxOpenConns <= 0 {
		s.MaxOpenConns = defaultMaxOpenConns
	}
	if s.MaxIdleConns <= 0 {
		s.MaxIdleConns = defaultMaxIdleConns
	}
	if s.MaxIdleConns > s.MaxOpenConns {
		s.MaxIdleConns = s.MaxOpenConns
	}
	if s.ConnMaxLifetime <= 0 {
		s.ConnMaxLifetime = defaultConnLifetime
	}
	return s
}

// OpenPostgres opens a pooled connection and verifies connectivity with a
// bounded ping before handing the pool back. driverName is "pgx" in this
// service. The dsn carries credentials and must stay out of logs.
func OpenPostgres(ctx context.Context, driverName, dsn string, settings PoolSettings) (*sql.DB, error) {
	settings = settings.normalized()

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(settings.MaxOpenConns)
	db.SetMaxIdleConns(settings.MaxIdleConns)
	db.SetConnMaxLifetime(settings.ConnMaxLifetime)
	db.SetConnMaxIdleTime(connIdleTimeout)

	pingCtx, cancel := context.WithTimeout(ctx, connectPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	return db, nil
}

// TxFunc is the unit of work executed inside a transaction.
type TxFunc func(ctx context.Context, tx *sql.Tx) error

// WithTx wraps fn in a transaction: commit on nil error, rollback on error
// or panic (the panic is re-raised after rollback).
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFunc) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
