// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(s *Store) error {
	schema := schemaSQLite
	if s.driver == DriverPostgres {
		schema = schemaPostgres
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// rating_fetched_at is unix seconds; NULL means the rating was never
// fetched. A votes row exists iff the user's current vote is nonzero.
// bucket_aggregate keeps one running sum per (editorial, rating/100).
const schemaSQLite = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    atcoder_id TEXT NOT NULL UNIQUE,
    rating INTEGER,
    rating_fetched_at INTEGER
);

CREATE TABLE IF NOT EXISTS editorials (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS votes (
    user_id INTEGER NOT NULL REFERENCES users(id),
    editorial_id INTEGER NOT NULL REFERENCES editorials(id),
    score INTEGER NOT NULL CHECK (score IN (-1, 1)),
    rating_snapshot INTEGER NOT NULL,
    PRIMARY KEY (user_id, editorial_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_editorial ON votes(editorial_id);

CREATE TABLE IF NOT EXISTS bucket_aggregate (
    editorial_id INTEGER NOT NULL REFERENCES editorials(id),
    rating_level INTEGER NOT NULL,
    score INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (editorial_id, rating_level)
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    atcoder_id TEXT NOT NULL UNIQUE,
    rating INTEGER,
    rating_fetched_at BIGINT
);

CREATE TABLE IF NOT EXISTS editorials (
    id BIGSERIAL PRIMARY KEY,
    url TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS votes (
    user_id BIGINT NOT NULL REFERENCES users(id),
    editorial_id BIGINT NOT NULL REFERENCES editorials(id),
    score INTEGER NOT NULL CHECK (score IN (-1, 1)),
    rating_snapshot INTEGER NOT NULL,
    PRIMARY KEY (user_id, editorial_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_editorial ON votes(editorial_id);

CREATE TABLE IF NOT EXISTS bucket_aggregate (
    editorial_id BIGINT NOT NULL REFERENCES editorials(id),
    rating_level INTEGER NOT NULL,
    score BIGINT NOT NULL DEFAULT 0,
    PRIMARY KEY (editorial_id, rating_level)
);
`
