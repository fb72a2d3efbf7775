// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package votes implements the vote-tallying engine: one signed vote per
(user, editorial), aggregated into 100-point rating buckets.

# Invariants

  - A votes row exists iff the user's current vote is nonzero; voting
    "none" deletes the row.
  - For every editorial, the sum of bucket_aggregate scores equals the
    sum of the votes rows. The revote transaction preserves this by
    removing the old contribution (bucketed by the stored
    rating_snapshot) and adding the new one (bucketed by the freshly
    resolved rating) in one atomic unit.
  - rating_snapshot is the rating used when the vote was last placed,
    not the user's current rating; a contribution only moves buckets
    when the user re-votes after their cached rating changed.

# Ordering

Network work (rating refresh, contest editorial scraping) resolves before
the vote transaction opens. The rating cache write is a separate atomic
unit: best-effort, not required to stay consistent with the vote it
informed.
*/
package votes
