// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"testing"
	"time"
)

func testCodec() *Codec {
	return NewCodec(Config{
		AffiliationSecret: "affiliation-secret",
		SessionSecret:     "session-secret",
	})
}

// flipHexChar returns a different hex digit so a single-character edit
// always changes the token.
func flipHexChar(c byte) byte {
	if c == '0' {
		return '1'
	}
	return '0'
}

func TestValidateAtCoderID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"standard handle", "magurofly", true},
		{"minimum length", "abc", true},
		{"maximum length", "abcdefgh12345678", true},
		{"digits only", "12345", true},
		{"mixed case", "TouristFan2", true},
		{"too short", "ab", false},
		{"too long", "abcdefgh123456789", false},
		{"underscore", "user_name", false},
		{"hyphen", "user-name", false},
		{"empty", "", false},
		{"unicode", "ユーザー", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateAtCoderID(tt.id); got != tt.want {
				t.Errorf("ValidateAtCoderID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestAffiliationTokenRoundTrip(t *testing.T) {
	codec := testCodec()

	token, err := codec.IssueAffiliationToken("magurofly")
	if err != nil {
		t.Fatalf("IssueAffiliationToken() error = %v", err)
	}
	if !affiliationTokenPattern.MatchString(token) {
		t.Errorf("token %q does not match the affiliation token shape", token)
	}
	if err := codec.ValidateAffiliationToken("magurofly", token); err != nil {
		t.Errorf("ValidateAffiliationToken() error = %v, want nil", err)
	}
}

func TestIssueAffiliationTokenInvalidID(t *testing.T) {
	codec := testCodec()

	if _, err := codec.IssueAffiliationToken("ab"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("IssueAffiliationToken(\"ab\") error = %v, want ErrInvalidID", err)
	}
}

func TestAffiliationTokenExpiry(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	codec := testCodec()
	codec.now = func() time.Time { return issued }

	token, err := codec.IssueAffiliationToken("magurofly")
	if err != nil {
		t.Fatalf("IssueAffiliationToken() error = %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"immediately", issued, nil},
		{"one second before expiry", issued.Add(3599 * time.Second), nil},
		{"exactly at expiry", issued.Add(3600 * time.Second), nil},
		{"one second past expiry", issued.Add(3601 * time.Second), ErrTokenExpired},
		{"long past expiry", issued.Add(48 * time.Hour), ErrTokenExpired},
		// The expiry check is one-sided: a token dated ahead of the
		// verifier's clock still validates.
		{"future-dated token", issued.Add(-10 * time.Minute), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec.now = func() time.Time { return tt.at }
			err := codec.ValidateAffiliationToken("magurofly", token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAffiliationToken() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAffiliationTokenTamper(t *testing.T) {
	codec := testCodec()

	token, err := codec.IssueAffiliationToken("magurofly")
	if err != nil {
		t.Fatalf("IssueAffiliationToken() error = %v", err)
	}

	// Flipping any single character of the hash segment must fail
	// verification.
	hashStart := len(token) - 64
	for i := hashStart; i < len(token); i++ {
		tampered := []byte(token)
		tampered[i] = flipHexChar(tampered[i])
		if err := codec.ValidateAffiliationToken("magurofly", string(tampered)); !errors.Is(err, ErrBadSignature) {
			t.Fatalf("tampered position %d: error = %v, want ErrBadSignature", i, err)
		}
	}
}

func TestAffiliationTokenWrongBinding(t *testing.T) {
	codec := testCodec()

	token, err := codec.IssueAffiliationToken("magurofly")
	if err != nil {
		t.Fatalf("IssueAffiliationToken() error = %v", err)
	}

	// A token issued for one handle must not verify for another.
	if err := codec.ValidateAffiliationToken("somebodyelse", token); !errors.Is(err, ErrBadSignature) {
		t.Errorf("wrong handle: error = %v, want ErrBadSignature", err)
	}

	// A codec with a different secret must reject the token.
	other := NewCodec(Config{AffiliationSecret: "other-secret", SessionSecret: "session-secret"})
	if err := other.ValidateAffiliationToken("magurofly", token); !errors.Is(err, ErrBadSignature) {
		t.Errorf("wrong secret: error = %v, want ErrBadSignature", err)
	}
}

func TestValidateAffiliationTokenMalformed(t *testing.T) {
	codec := testCodec()

	good, _ := codec.IssueAffiliationToken("magurofly")

	tests := []struct {
		name  string
		id    string
		token string
	}{
		{"empty token", "magurofly", ""},
		{"missing hyphen", "magurofly", "0000000000000000" + "ab"},
		{"short hash", "magurofly", "0000000000000000-abcdef"},
		{"uppercase hex", "magurofly", "0000000000000000-" + "ABCDEF0123456789ABCDEF0123456789ABCDEF0123456789ABCDEF0123456789"},
		{"session token shape", "magurofly", "0000000000000000-magurofly-1-" + good[len(good)-64:]},
		{"invalid id", "a", good},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := codec.ValidateAffiliationToken(tt.id, tt.token); !errors.Is(err, ErrMalformedToken) {
				t.Errorf("ValidateAffiliationToken() error = %v, want ErrMalformedToken", err)
			}
		})
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	codec := testCodec()
	codec.now = func() time.Time { return issued }

	token, err := codec.IssueSessionToken("magurofly", 42)
	if err != nil {
		t.Fatalf("IssueSessionToken() error = %v", err)
	}

	sess, err := codec.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken() error = %v", err)
	}
	if sess.AtCoderID != "magurofly" {
		t.Errorf("AtCoderID = %q, want %q", sess.AtCoderID, "magurofly")
	}
	if sess.UserID != 42 {
		t.Errorf("UserID = %d, want 42", sess.UserID)
	}
	if !sess.IssuedAt.Equal(issued) {
		t.Errorf("IssuedAt = %v, want %v", sess.IssuedAt, issued)
	}
}

func TestSessionTokenNeverExpires(t *testing.T) {
	codec := testCodec()
	codec.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	token, err := codec.IssueSessionToken("magurofly", 42)
	if err != nil {
		t.Fatalf("IssueSessionToken() error = %v", err)
	}

	codec.now = func() time.Time { return time.Date(2035, 6, 1, 12, 0, 0, 0, time.UTC) }
	if _, err := codec.ParseSessionToken(token); err != nil {
		t.Errorf("ParseSessionToken() after 10 years error = %v, want nil", err)
	}
}

func TestSessionTokenTamper(t *testing.T) {
	codec := testCodec()

	token, err := codec.IssueSessionToken("magurofly", 42)
	if err != nil {
		t.Fatalf("IssueSessionToken() error = %v", err)
	}

	hashStart := len(token) - 64
	for i := hashStart; i < len(token); i++ {
		tampered := []byte(token)
		tampered[i] = flipHexChar(tampered[i])
		if _, err := codec.ParseSessionToken(string(tampered)); !errors.Is(err, ErrBadSignature) {
			t.Fatalf("tampered position %d: error = %v, want ErrBadSignature", i, err)
		}
	}
}

func TestSessionTokenClaimTamper(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	codec := testCodec()
	codec.now = func() time.Time { return issued }

	token, err := codec.IssueSessionToken("magurofly", 42)
	if err != nil {
		t.Fatalf("IssueSessionToken() error = %v", err)
	}
	hash := token[len(token)-64:]
	timePart := token[:16]

	tests := []struct {
		name  string
		token string
	}{
		{"swapped user id", timePart + "-magurofly-43-" + hash},
		{"swapped handle", timePart + "-impostor99-42-" + hash},
		{"swapped timestamp", "00000000ffffffff-magurofly-42-" + hash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.ParseSessionToken(tt.token); !errors.Is(err, ErrBadSignature) {
				t.Errorf("ParseSessionToken() error = %v, want ErrBadSignature", err)
			}
		})
	}
}

func TestParseSessionTokenMalformed(t *testing.T) {
	codec := testCodec()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"affiliation token shape", "0000000000000000-abcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789"},
		{"missing hash", "0000000000000000-magurofly-42"},
		{"handle with symbols", "0000000000000000-magu_rofly-42-abcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789"},
		{"non-numeric user id", "0000000000000000-magurofly-4x-abcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789"},
		{"garbage", "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.ParseSessionToken(tt.token); !errors.Is(err, ErrMalformedToken) {
				t.Errorf("ParseSessionToken(%q) error = %v, want ErrMalformedToken", tt.token, err)
			}
		})
	}
}

func BenchmarkIssueSessionToken(b *testing.B) {
	codec := testCodec()
	for i := 0; i < b.N; i++ {
		if _, err := codec.IssueSessionToken("magurofly", 42); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseSessionToken(b *testing.B) {
	codec := testCodec()
	token, err := codec.IssueSessionToken("magurofly", 42)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.ParseSessionToken(token); err != nil {
			b.Fatal(err)
		}
	}
}
