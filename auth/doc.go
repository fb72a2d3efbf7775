// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth implements the two self-verifying token kinds that replace a
server-side session store.

# Affiliation Tokens

Short-lived nonces proving a verification request for a specific handle at
a specific time:

	token, err := codec.IssueAffiliationToken("tourist")
	err = codec.ValidateAffiliationToken("tourist", token)

Format is "{16-hex time}-{64-hex hash}" where the hash is SHA-256 over
"{time}:{atcoder_id}:{secret}". Validation rejects tokens older than one
hour; the check is one-sided so future-dated tokens (clock skew) pass.

# Session Tokens

Durable bearer credentials issued only after the affiliation token was
found published on the caller's AtCoder profile:

	token, err := codec.IssueSessionToken("tourist", userID)
	sess, err := codec.ParseSessionToken(token)

Format is "{16-hex time}-{atcoder_id}-{user_id}-{64-hex hash}". There is
no expiry and no denylist; rotating the secret revokes every outstanding
token at once.

Both secrets come from process configuration and are never embedded or
logged. They must differ per token kind so one kind cannot be replayed as
the other.
*/
package auth
