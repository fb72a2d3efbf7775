// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/magurofly/editorial-voting/auth"
	"github.com/magurofly/editorial-voting/middleware"
	"github.com/magurofly/editorial-voting/models"
	"github.com/magurofly/editorial-voting/votes"
)

type VoteHandler struct {
	codec  *auth.Codec
	engine *votes.Engine
}

func NewVoteHandler(codec *auth.Codec, engine *votes.Engine) *VoteHandler {
	return &VoteHandler{codec: codec, engine: engine}
}

// Vote handles POST /vote
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, "invalid request")
		return
	}

	sess, err := h.codec.ParseSessionToken(req.Token)
	if err != nil {
		middleware.ErrorResponse(w, err.Error())
		return
	}

	if err := h.engine.Cast(r.Context(), sess, req.Contest, req.Editorial, req.Vote); err != nil {
		slog.Warn("vote rejected",
			"user_id", sess.UserID,
			"editorial", req.Editorial,
			"error", err,
		)
		middleware.ErrorResponse(w, err.Error())
		return
	}

	slog.Info("vote recorded", "user_id", sess.UserID, "vote", req.Vote)

	middleware.JSONResponse(w, models.VoteResponse{Status: models.StatusSuccess})
}
