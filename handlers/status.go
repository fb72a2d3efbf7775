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

type StatusHandler struct {
	codec  *auth.Codec
	engine *votes.Engine
}

func NewStatusHandler(codec *auth.Codec, engine *votes.Engine) *StatusHandler {
	return &StatusHandler{codec: codec, engine: engine}
}

// session parses the optional token field. An absent token means an
// anonymous caller; a present but bad token is an error, not anonymity.
func (h *StatusHandler) session(token string) (*auth.Session, error) {
	if token == "" {
		return nil, nil
	}
	sess, err := h.codec.ParseSessionToken(token)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Status handles POST /status
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	var req models.StatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, "invalid request")
		return
	}

	sess, err := h.session(req.Token)
	if err != nil {
		middleware.ErrorResponse(w, err.Error())
		return
	}

	status, err := h.engine.Status(r.Context(), sess, req.Editorial)
	if err != nil {
		slog.Warn("status read failed", "editorial", req.Editorial, "error", err)
		middleware.ErrorResponse(w, err.Error())
		return
	}

	middleware.JSONResponse(w, models.StatusResponse{
		Status:     models.StatusSuccess,
		VoteStatus: status,
	})
}

// Statuses handles POST /statuses
func (h *StatusHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	var req models.StatusesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, "invalid request")
		return
	}

	sess, err := h.session(req.Token)
	if err != nil {
		middleware.ErrorResponse(w, err.Error())
		return
	}

	results, err := h.engine.Statuses(r.Context(), sess, req.Editorials)
	if err != nil {
		slog.Warn("statuses read failed", "count", len(req.Editorials), "error", err)
		middleware.ErrorResponse(w, err.Error())
		return
	}

	middleware.JSONResponse(w, models.StatusesResponse{
		Status:  models.StatusSuccess,
		Results: results,
	})
}
