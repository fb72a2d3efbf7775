// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Supported driver names, as registered by modernc.org/sqlite and lib/pq.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store wraps a *sql.DB in one of two deployment shapes. The sqlite shape
// runs a single connection behind a process-wide mutex, fully serializing
// every operation. The postgres shape pools connections and relies on
// transaction isolation instead; callers must express counter updates as
// in-SQL increments so concurrent transactions never lose them.
type Store struct {
	db     *sql.DB
	driver string
	mu     *sync.Mutex // non-nil only in the single-connection shape
}

// Open opens a Store in the shape implied by the driver.
func Open(driver, dsn string) (*Store, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{db: sqlDB, driver: driver}
	if driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
		s.mu = &sync.Mutex{}
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

// Atomically runs fn inside a transaction, committing on nil and rolling
// back on error or panic. In the single-connection shape the mutex is held
// for the whole transaction and released on every exit path.
func (s *Store) Atomically(ctx context.Context, fn func(tx *Tx) error) error {
	if s.mu != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&Tx{tx: sqlTx, store: s}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Exec runs a single statement outside any transaction. Used for writes
// that are their own atomic unit, like the rating cache refresh.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if s.mu != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	if s.mu != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

// Tx is a transaction handle scoped to one Atomically call.
type Tx struct {
	tx    *sql.Tx
	store *Store
}

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.store.rebind(query), args...)
}

func (t *Tx) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.store.rebind(query), args...)
}

func (t *Tx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.store.rebind(query), args...)
}

// rebind rewrites ? placeholders to $1..$n for postgres. Queries are
// written once in ? style; sqlite takes them as-is.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		} else {
			b.WriteByte(query[i])
		}
	}
	return b.String()
}
