// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides schema creation and the transactional store the voting
engine runs against.

# Deployment Shapes

Two shapes satisfy the same invariants:

  - sqlite: one connection guarded by a mutex. Every Atomically call (and
    every standalone Exec/QueryRow) holds the lock for its full duration,
    fully serializing the server. Simple and correct, throughput-limited.
  - postgres: a pooled *sql.DB. Correctness relies on transaction
    isolation; callers write counter updates as in-SQL increments
    (score = score + ?) so concurrent transactions never lose updates.

# Transactions

	err := store.Atomically(ctx, func(tx *db.Tx) error {
		// reads and writes; return error to roll back
		return nil
	})

The lock (when present) and the rollback are released on every exit path,
including panics and early returns.

# Placeholders

Queries are written with ? placeholders. The store rewrites them to $1..$n
when talking to postgres, so call sites stay driver-agnostic.
*/
package db
