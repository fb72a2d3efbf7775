// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidID      = errors.New("invalid atcoder_id format")
	ErrMalformedToken = errors.New("invalid token format")
	ErrTokenExpired   = errors.New("affiliation_token expired")
	ErrBadSignature   = errors.New("token signature mismatch")
)

// AffiliationTokenTTL is how long an affiliation token stays valid after
// issuance. The check is one-sided: tokens dated in the future validate,
// which tolerates clock skew between replicas.
const AffiliationTokenTTL = time.Hour

var (
	idPattern               = regexp.MustCompile(`^[0-9A-Za-z]{3,16}$`)
	affiliationTokenPattern = regexp.MustCompile(`^[0-9a-f]{16}-[0-9a-f]{64}$`)
	sessionTokenPattern     = regexp.MustCompile(`^[0-9a-f]{16}-[0-9A-Za-z]{3,16}-[0-9]{1,18}-[0-9a-f]{64}$`)
)

// Config holds the two server-side token secrets. They must differ so an
// affiliation token can never be replayed as a session token.
type Config struct {
	AffiliationSecret string
	SessionSecret     string
}

// Session is the identity carried by a parsed session token.
type Session struct {
	AtCoderID string
	UserID    int64
	IssuedAt  time.Time
}

// Codec issues and verifies both token kinds.
type Codec struct {
	cfg Config
	now func() time.Time
}

func NewCodec(cfg Config) *Codec {
	return &Codec{cfg: cfg, now: time.Now}
}

// ValidateAtCoderID reports whether id is a syntactically valid AtCoder
// handle (3-16 alphanumeric characters).
func ValidateAtCoderID(id string) bool {
	return idPattern.MatchString(id)
}

// affiliationHash is SHA-256 over "{time:016x}:{atcoder_id}:{secret}",
// lowercase hex encoded.
func affiliationHash(timeSec uint64, atcoderID, secret string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%016x:%s:%s", timeSec, atcoderID, secret)))
	return hex.EncodeToString(sum[:])
}

// sessionHash additionally binds the internal user id:
// SHA-256 over "{time:016x}:{atcoder_id}:{user_id}:{secret}".
func sessionHash(timeSec uint64, atcoderID string, userID int64, secret string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%016x:%s:%d:%s", timeSec, atcoderID, userID, secret)))
	return hex.EncodeToString(sum[:])
}

// IssueAffiliationToken creates a "{time}-{hash}" token proving that
// verification for this handle was requested at this time. It does not
// prove the caller controls the handle.
func (c *Codec) IssueAffiliationToken(atcoderID string) (string, error) {
	if !ValidateAtCoderID(atcoderID) {
		return "", ErrInvalidID
	}
	t := uint64(c.now().Unix())
	return fmt.Sprintf("%016x-%s", t, affiliationHash(t, atcoderID, c.cfg.AffiliationSecret)), nil
}

// ValidateAffiliationToken fails closed: any structural or temporal
// anomaly is a rejection.
func (c *Codec) ValidateAffiliationToken(atcoderID, token string) error {
	if !ValidateAtCoderID(atcoderID) || !affiliationTokenPattern.MatchString(token) {
		return ErrMalformedToken
	}
	timePart, hashPart, _ := strings.Cut(token, "-")
	timeSec, err := strconv.ParseUint(timePart, 16, 64)
	if err != nil {
		return ErrMalformedToken
	}
	if c.now().Unix()-int64(timeSec) > int64(AffiliationTokenTTL/time.Second) {
		return ErrTokenExpired
	}
	want := affiliationHash(timeSec, atcoderID, c.cfg.AffiliationSecret)
	if !hmac.Equal([]byte(hashPart), []byte(want)) {
		return ErrBadSignature
	}
	return nil
}

// IssueSessionToken creates a "{time}-{atcoder_id}-{user_id}-{hash}"
// bearer credential. It carries no expiry: it is re-verifiable at any time
// by hash recomputation, and rotating SessionSecret is the only
// revocation path.
func (c *Codec) IssueSessionToken(atcoderID string, userID int64) (string, error) {
	if !ValidateAtCoderID(atcoderID) {
		return "", ErrInvalidID
	}
	t := uint64(c.now().Unix())
	return fmt.Sprintf("%016x-%s-%d-%s", t, atcoderID, userID, sessionHash(t, atcoderID, userID, c.cfg.SessionSecret)), nil
}

// ParseSessionToken verifies the signature and recovers the identity. It
// never contacts AtCoder.
func (c *Codec) ParseSessionToken(token string) (Session, error) {
	if !sessionTokenPattern.MatchString(token) {
		return Session{}, ErrMalformedToken
	}
	// The id segment is alphanumeric and the others are fixed-shape, so
	// the token splits into exactly four parts.
	parts := strings.Split(token, "-")
	timeSec, err := strconv.ParseUint(parts[0], 16, 64)
	if err != nil {
		return Session{}, ErrMalformedToken
	}
	userID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Session{}, ErrMalformedToken
	}
	want := sessionHash(timeSec, parts[1], userID, c.cfg.SessionSecret)
	if !hmac.Equal([]byte(parts[3]), []byte(want)) {
		return Session{}, ErrBadSignature
	}
	return Session{
		AtCoderID: parts[1],
		UserID:    userID,
		IssuedAt:  time.Unix(int64(timeSec), 0),
	}, nil
}
