// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the JSON request and response types for the
editorial voting API.

Every response carries a status discriminator:

	{"status": "success", ...}
	{"status": "error", "reason": "..."}

Domain failures are never mapped to HTTP status codes; the boundary
always answers 200 and clients inspect the status field. This matches
the contract the userscript frontend was written against.

Field names follow the wire contract: atcoder_id, affiliation_token,
token, contest, editorial, vote, editorials, score, scores_by_rating,
current_vote.
*/
package models
