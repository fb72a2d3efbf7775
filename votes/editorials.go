// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magurofly/editorial-voting/atcoder"
	"github.com/magurofly/editorial-voting/db"
)

// ResolveEditorial maps a caller-supplied editorial URL and contest to the
// internal editorial id. On a cache miss the contest's whole editorial
// list is scraped and bulk-inserted, so one lookup seeds every editorial
// of that contest at once. A URL that is still unknown afterwards means
// the editorial/contest pair don't correspond.
func (e *Engine) ResolveEditorial(ctx context.Context, contest, editorial string) (int64, error) {
	canonical, ok := atcoder.CanonicalizeEditorialURL(editorial)
	if !ok {
		return 0, ErrInvalidEditorialURL
	}

	id, err := e.lookupEditorial(ctx, canonical)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up editorial: %w", err)
	}

	urls, err := e.source.ListEditorials(ctx, contest)
	if err != nil {
		return 0, err
	}
	if err := e.store.Atomically(ctx, func(tx *db.Tx) error {
		for _, url := range urls {
			if _, err := tx.Exec(ctx, `
				INSERT INTO editorials (url) VALUES (?)
				ON CONFLICT (url) DO NOTHING
			`, url); err != nil {
				return fmt.Errorf("failed to register editorial: %w", err)
			}
		}
		return nil
	}); err != nil {
		return 0, err
	}

	id, err = e.lookupEditorial(ctx, canonical)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrEditorialNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up editorial: %w", err)
	}
	return id, nil
}

func (e *Engine) lookupEditorial(ctx context.Context, canonicalURL string) (int64, error) {
	var id int64
	err := e.store.QueryRow(ctx, `
		SELECT id FROM editorials WHERE url = ?
	`, canonicalURL).Scan(&id)
	return id, err
}
