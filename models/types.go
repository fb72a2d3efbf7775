// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Response status discriminator values. Every endpoint answers HTTP 200;
// callers branch on this field, never on the HTTP status code.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Vote direction strings accepted on the wire
const (
	VoteNone = "none"
	VoteUp   = "up"
	VoteDown = "down"
)

// Request types

type CreateAffiliationTokenRequest struct {
	AtCoderID string `json:"atcoder_id"`
}

type CreateTokenRequest struct {
	AtCoderID        string `json:"atcoder_id"`
	AffiliationToken string `json:"affiliation_token"`
}

type VoteRequest struct {
	Token     string `json:"token"`
	Contest   string `json:"contest"`
	Editorial string `json:"editorial"`
	Vote      string `json:"vote"`
}

type StatusRequest struct {
	Token     string `json:"token,omitempty"`
	Editorial string `json:"editorial"`
}

type StatusesRequest struct {
	Token      string   `json:"token,omitempty"`
	Editorials []string `json:"editorials"`
}

// Response types

type CreateAffiliationTokenResponse struct {
	Status           string `json:"status"`
	AffiliationToken string `json:"affiliation_token"`
}

type CreateTokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

type VoteResponse struct {
	Status string `json:"status"`
}

type StatusResponse struct {
	Status string `json:"status"`
	VoteStatus
}

type StatusesResponse struct {
	Status  string       `json:"status"`
	Results []VoteStatus `json:"results"`
}

// VoteStatus is the aggregate state of one editorial as seen by one caller.
// CurrentVote is empty for anonymous callers and "none"/"up"/"down" for
// authenticated ones.
type VoteStatus struct {
	Score          int64            `json:"score"`
	ScoresByRating map[string]int64 `json:"scores_by_rating"`
	CurrentVote    string           `json:"current_vote,omitempty"`
}

// ErrorResponse is the envelope for every failed request
type ErrorResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}
