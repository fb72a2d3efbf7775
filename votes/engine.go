// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/magurofly/editorial-voting/atcoder"
	"github.com/magurofly/editorial-voting/auth"
	"github.com/magurofly/editorial-voting/db"
	"github.com/magurofly/editorial-voting/models"
)

var (
	ErrInvalidVote         = errors.New("invalid vote format (none|up|down)")
	ErrInvalidEditorialURL = errors.New("invalid editorial URL")
	ErrEditorialNotFound   = errors.New("editorial not found")
	ErrTooManyEditorials   = errors.New("number of editorials must be less than or equal to 256")
	ErrUserNotFound        = errors.New("user not found")
)

const (
	// BucketWidth is the rating span of one aggregate bucket.
	BucketWidth = 100
	// RatingTTL is how long a cached rating is trusted before the next
	// nonzero vote forces a refresh.
	RatingTTL = time.Hour
	// MaxStatusBatch bounds one statuses call.
	MaxStatusBatch = 256
)

// Engine owns every read and write against the ledger: user upsert,
// editorial resolution, the revote transaction, and status reads.
type Engine struct {
	store   *db.Store
	source  atcoder.ProfileSource
	ratings singleflight.Group
	now     func() time.Time
}

func NewEngine(store *db.Store, source atcoder.ProfileSource) *Engine {
	return &Engine{store: store, source: source, now: time.Now}
}

// ParseVote maps a wire vote string to its signed value.
func ParseVote(vote string) (int, error) {
	switch vote {
	case models.VoteNone:
		return 0, nil
	case models.VoteUp:
		return 1, nil
	case models.VoteDown:
		return -1, nil
	default:
		return 0, ErrInvalidVote
	}
}

// Cast records the caller's vote on one editorial, replacing any previous
// vote. The external fetches (rating refresh, editorial list) resolve
// before the transaction opens so no lock is held across network latency;
// the transaction itself only moves numbers.
//
// Casting the same direction twice is not a no-op: the rating snapshot is
// re-stamped with the freshly resolved rating, which can move the user's
// contribution into a different bucket when their rating drifted.
func (e *Engine) Cast(ctx context.Context, sess auth.Session, contest, editorial, vote string) error {
	newVote, err := ParseVote(vote)
	if err != nil {
		return err
	}

	editorialID, err := e.ResolveEditorial(ctx, contest, editorial)
	if err != nil {
		return err
	}

	var newRating int
	if newVote != 0 {
		// A "none" vote never touches AtCoder.
		newRating, err = e.RefreshRating(ctx, sess)
		if err != nil {
			return err
		}
	}

	return e.store.Atomically(ctx, func(tx *db.Tx) error {
		var oldVote, oldRating int
		err := tx.QueryRow(ctx, `
			SELECT score, rating_snapshot FROM votes
			WHERE user_id = ? AND editorial_id = ?
		`, sess.UserID, editorialID).Scan(&oldVote, &oldRating)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// no previous vote
		case err != nil:
			return fmt.Errorf("failed to read current vote: %w", err)
		default:
			// Remove the old contribution from the bucket it was
			// counted in. The stored snapshot decides the bucket,
			// not the refreshed rating.
			_, err := tx.Exec(ctx, `
				UPDATE bucket_aggregate SET score = score - ?
				WHERE editorial_id = ? AND rating_level = ?
			`, oldVote, editorialID, oldRating/BucketWidth)
			if err != nil {
				return fmt.Errorf("failed to revert old vote: %w", err)
			}
		}

		if newVote == 0 {
			if _, err := tx.Exec(ctx, `
				DELETE FROM votes WHERE user_id = ? AND editorial_id = ?
			`, sess.UserID, editorialID); err != nil {
				return fmt.Errorf("failed to delete vote: %w", err)
			}
			return nil
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO votes (user_id, editorial_id, score, rating_snapshot)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (user_id, editorial_id)
			DO UPDATE SET score = excluded.score, rating_snapshot = excluded.rating_snapshot
		`, sess.UserID, editorialID, newVote, newRating); err != nil {
			return fmt.Errorf("failed to upsert vote: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO bucket_aggregate (editorial_id, rating_level, score)
			VALUES (?, ?, ?)
			ON CONFLICT (editorial_id, rating_level)
			DO UPDATE SET score = bucket_aggregate.score + excluded.score
		`, editorialID, newRating/BucketWidth, newVote); err != nil {
			return fmt.Errorf("failed to apply vote to bucket: %w", err)
		}
		return nil
	})
}
