// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/magurofly/editorial-voting/atcoder"
	"github.com/magurofly/editorial-voting/auth"
	"github.com/magurofly/editorial-voting/middleware"
	"github.com/magurofly/editorial-voting/models"
	"github.com/magurofly/editorial-voting/votes"
)

type TokenHandler struct {
	codec  *auth.Codec
	source atcoder.ProfileSource
	engine *votes.Engine
}

func NewTokenHandler(codec *auth.Codec, source atcoder.ProfileSource, engine *votes.Engine) *TokenHandler {
	return &TokenHandler{codec: codec, source: source, engine: engine}
}

// CreateAffiliationToken handles POST /create-affiliation-token
func (h *TokenHandler) CreateAffiliationToken(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAffiliationTokenRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, "invalid request")
		return
	}

	token, err := h.codec.IssueAffiliationToken(req.AtCoderID)
	if err != nil {
		middleware.ErrorResponse(w, err.Error())
		return
	}

	middleware.JSONResponse(w, models.CreateAffiliationTokenResponse{
		Status:           models.StatusSuccess,
		AffiliationToken: token,
	})
}

// CreateToken handles POST /create-token. The caller must have published
// the affiliation token verbatim on their AtCoder profile; the profile is
// re-fetched here to check that, which is the only proof of control this
// scheme requires.
func (h *TokenHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTokenRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, "invalid request")
		return
	}

	if err := h.codec.ValidateAffiliationToken(req.AtCoderID, req.AffiliationToken); err != nil {
		middleware.ErrorResponse(w, err.Error())
		return
	}

	affiliation, err := h.source.FetchAffiliation(r.Context(), req.AtCoderID)
	if err != nil {
		slog.Warn("affiliation fetch failed", "atcoder_id", req.AtCoderID, "error", err)
		middleware.ErrorResponse(w, err.Error())
		return
	}
	if affiliation != req.AffiliationToken {
		middleware.ErrorResponse(w, "affiliation_token not matched")
		return
	}

	userID, err := h.engine.EnsureUser(r.Context(), req.AtCoderID)
	if err != nil {
		slog.Error("failed to ensure user", "atcoder_id", req.AtCoderID, "error", err)
		middleware.ErrorResponse(w, "database error")
		return
	}

	token, err := h.codec.IssueSessionToken(req.AtCoderID, userID)
	if err != nil {
		middleware.ErrorResponse(w, err.Error())
		return
	}

	slog.Info("session token issued", "atcoder_id", req.AtCoderID, "user_id", userID)

	middleware.JSONResponse(w, models.CreateTokenResponse{
		Status: models.StatusSuccess,
		Token:  token,
	})
}
