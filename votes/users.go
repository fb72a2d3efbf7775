// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"context"
	"fmt"

	"github.com/magurofly/editorial-voting/db"
)

// EnsureUser returns the internal id for an AtCoder handle, creating the
// row on first verified token issuance. Users are never deleted.
func (e *Engine) EnsureUser(ctx context.Context, atcoderID string) (int64, error) {
	var id int64
	err := e.store.Atomically(ctx, func(tx *db.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO users (atcoder_id) VALUES (?)
			ON CONFLICT (atcoder_id) DO NOTHING
		`, atcoderID); err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		if err := tx.QueryRow(ctx, `
			SELECT id FROM users WHERE atcoder_id = ?
		`, atcoderID).Scan(&id); err != nil {
			return fmt.Errorf("failed to read user id: %w", err)
		}
		return nil
	})
	return id, err
}
