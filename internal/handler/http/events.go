// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/MKhiriev/go-omnifolio/internal/app"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/utils"
)

const eventWriteTimeout = 5 * time.Second

// stateEvents handles GET /api/state/events. The connection stays open and
// receives a {rev, updatedAt} message after every accepted push of the user,
// whichever device made it. Clients never write.
func (h *Handler) stateEvents(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(errNoUserInContext).Str("func", "*Handler.stateEvents").Send()
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "*Handler.stateEvents").Msg("websocket upgrade failed")
		return
	}
	defer conn.CloseNow()

	events, unsubscribe := h.services.SnapshotService.Subscribe(userID)
	defer unsubscribe()

	// CloseRead handles control frames and cancels ctx once the peer goes away.
	ctx := conn.CloseRead(r.Context())

	log.Debug().Str("func", "*Handler.stateEvents").Str("user_id", userID).Msg("events subscriber connected")

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, eventWriteTimeout)
			err = wsjson.Write(writeCtx, conn, ev)
			cancel()
			if err != nil {
				log.Debug().Err(err).Str("func", "*Handler.stateEvents").Int64("rev", ev.Rev).Msg("events subscriber dropped")
				return
			}
		}
	}
}
