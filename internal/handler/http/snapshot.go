// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-omnifolio/internal/app"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/store"
	"github.com/MKhiriev/go-omnifolio/internal/utils"
	"github.com/MKhiriev/go-omnifolio/models"
)

// pushState handles POST /api/state. A stale revision is answered with 409
// and the stored revision so the client can pull it.
func (h *Handler) pushState(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(errNoUserInContext).Str("func", "*Handler.pushState").Send()
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var req models.PushRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPushBody)).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.pushState").Msg("failed to decode push request")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	resp, err := h.services.SnapshotService.Push(r.Context(), userID, req)
	if err != nil {
		var conflict *store.ConflictError
		if errors.As(err, &conflict) {
			log.Info().Str("func", "*Handler.pushState").
				Int64("rev", req.Rev).
				Int64("current_rev", conflict.CurrentRev).
				Msg("stale push rejected")
			utils.WriteJSON(w, models.ConflictResponse{CurrentRev: conflict.CurrentRev, Message: app.MsgRevisionConflict}, http.StatusConflict)
			return
		}

		status := statusFromError(err)
		log.Err(err).Str("func", "*Handler.pushState").Int("status", status).Msg("push failed")
		http.Error(w, messageFromError(err), status)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// pullState handles GET /api/state.
func (h *Handler) pullState(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(errNoUserInContext).Str("func", "*Handler.pullState").Send()
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	resp, err := h.services.SnapshotService.Pull(r.Context(), userID)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("func", "*Handler.pullState").Int("status", status).Msg("pull failed")
		http.Error(w, messageFromError(err), status)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
