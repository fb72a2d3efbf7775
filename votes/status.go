// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magurofly/editorial-voting/atcoder"
	"github.com/magurofly/editorial-voting/auth"
	"github.com/magurofly/editorial-voting/db"
	"github.com/magurofly/editorial-voting/models"
)

// Status reads the aggregate and the caller's own vote for one editorial.
// Read-only: no rating refresh, no scraping. sess is nil for anonymous
// callers.
func (e *Engine) Status(ctx context.Context, sess *auth.Session, editorial string) (models.VoteStatus, error) {
	canonical, ok := atcoder.CanonicalizeEditorialURL(editorial)
	if !ok {
		return models.VoteStatus{}, ErrInvalidEditorialURL
	}
	var result models.VoteStatus
	err := e.store.Atomically(ctx, func(tx *db.Tx) error {
		var err error
		result, err = e.statusOf(ctx, tx, sess, canonical)
		return err
	})
	return result, err
}

// Statuses is the batch form, bounded at MaxStatusBatch. Editorials that
// don't canonicalize or were never voted on report a zero score rather
// than an error, so one bad URL can't fail the whole batch.
func (e *Engine) Statuses(ctx context.Context, sess *auth.Session, editorials []string) ([]models.VoteStatus, error) {
	if len(editorials) > MaxStatusBatch {
		return nil, ErrTooManyEditorials
	}
	results := make([]models.VoteStatus, len(editorials))
	err := e.store.Atomically(ctx, func(tx *db.Tx) error {
		for i, editorial := range editorials {
			canonical, ok := atcoder.CanonicalizeEditorialURL(editorial)
			if !ok {
				results[i] = emptyStatus(sess)
				continue
			}
			status, err := e.statusOf(ctx, tx, sess, canonical)
			if err != nil {
				return err
			}
			results[i] = status
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func emptyStatus(sess *auth.Session) models.VoteStatus {
	status := models.VoteStatus{ScoresByRating: map[string]int64{}}
	if sess != nil {
		status.CurrentVote = models.VoteNone
	}
	return status
}

func (e *Engine) statusOf(ctx context.Context, tx *db.Tx, sess *auth.Session, canonicalURL string) (models.VoteStatus, error) {
	result := emptyStatus(sess)

	var editorialID int64
	err := tx.QueryRow(ctx, `
		SELECT id FROM editorials WHERE url = ?
	`, canonicalURL).Scan(&editorialID)
	if errors.Is(err, sql.ErrNoRows) {
		// unknown editorial: zero score, no buckets
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("failed to look up editorial: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT rating_level, score FROM bucket_aggregate WHERE editorial_id = ?
	`, editorialID)
	if err != nil {
		return result, fmt.Errorf("failed to read buckets: %w", err)
	}
	for rows.Next() {
		var level int
		var score int64
		if err := rows.Scan(&level, &score); err != nil {
			return result, fmt.Errorf("failed to scan bucket: %w", err)
		}
		result.Score += score
		result.ScoresByRating[bucketKey(level)] = score
	}
	// close before the own-vote query: the tx runs on one connection
	if err := rows.Close(); err != nil {
		return result, fmt.Errorf("failed to read buckets: %w", err)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("failed to read buckets: %w", err)
	}

	if sess != nil {
		var score int
		err := tx.QueryRow(ctx, `
			SELECT score FROM votes WHERE user_id = ? AND editorial_id = ?
		`, sess.UserID, editorialID).Scan(&score)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			result.CurrentVote = models.VoteNone
		case err != nil:
			return result, fmt.Errorf("failed to read own vote: %w", err)
		case score > 0:
			result.CurrentVote = models.VoteUp
		case score < 0:
			result.CurrentVote = models.VoteDown
		default:
			result.CurrentVote = models.VoteNone
		}
	}
	return result, nil
}

// bucketKey renders a rating level as the "{low}-{high}" label used in
// scores_by_rating, e.g. level 14 -> "1400-1499".
func bucketKey(level int) string {
	low := level * BucketWidth
	return fmt.Sprintf("%d-%d", low, low+BucketWidth-1)
}
