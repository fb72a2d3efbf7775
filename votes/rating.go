// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magurofly/editorial-voting/auth"
)

// RefreshRating returns the rating to bucket the caller's vote under,
// consulting the cached value first. The cache write is its own atomic
// unit, deliberately independent of the vote transaction it informs:
// a vote that later fails still leaves the fresher rating behind.
//
// A fetch failure propagates; voting is refused rather than silently
// bucketing the user at a stale or default rating.
func (e *Engine) RefreshRating(ctx context.Context, sess auth.Session) (int, error) {
	var rating, fetchedAt sql.NullInt64
	err := e.store.QueryRow(ctx, `
		SELECT rating, rating_fetched_at FROM users WHERE id = ?
	`, sess.UserID).Scan(&rating, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cached rating: %w", err)
	}
	if rating.Valid && fetchedAt.Valid && e.now().Unix()-fetchedAt.Int64 <= int64(RatingTTL.Seconds()) {
		return int(rating.Int64), nil
	}

	// Concurrent refreshes for the same handle collapse into one fetch.
	v, err, _ := e.ratings.Do(sess.AtCoderID, func() (any, error) {
		fetched, err := e.source.FetchRating(ctx, sess.AtCoderID)
		if err != nil {
			return 0, err
		}
		if _, err := e.store.Exec(ctx, `
			UPDATE users SET rating = ?, rating_fetched_at = ? WHERE id = ?
		`, fetched, e.now().Unix(), sess.UserID); err != nil {
			return 0, fmt.Errorf("failed to cache rating: %w", err)
		}
		return fetched, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}
