// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/models"
)

// EventsListener receives revision notifications the server sends after
// another device of the same user pushed a snapshot.
type EventsListener struct {
	url    string
	token  string
	logger *logger.Logger
}

// NewEventsListener derives the websocket URL from the HTTP address. Events
// always travel over HTTP, whatever transport pushes and pulls use.
func NewEventsListener(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (*EventsListener, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	wsURL := baseURL
	switch {
	case strings.HasPrefix(wsURL, "https://"):
		wsURL = "wss://" + strings.TrimPrefix(wsURL, "https://")
	case strings.HasPrefix(wsURL, "http://"):
		wsURL = "ws://" + strings.TrimPrefix(wsURL, "http://")
	}

	return &EventsListener{
		url:    wsURL + eventsPath,
		token:  strings.TrimSpace(appCfg.Token),
		logger: logger,
	}, nil
}

// Listen connects and calls fn for every event until ctx is done or the
// connection drops. It always returns a non-nil error.
func (l *EventsListener) Listen(ctx context.Context, fn func(models.SnapshotEvent)) error {
	header := http.Header{}
	if l.token != "" {
		header.Set("Authorization", "Bearer "+l.token)
	}

	conn, resp, err := websocket.Dial(ctx, l.url, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: events subscription", ErrUnauthorized)
		}
		return fmt.Errorf("%w: dial events: %w", ErrNetwork, err)
	}
	defer conn.CloseNow()

	l.logger.Debug().Str("func", "EventsListener.Listen").Msg("subscribed to snapshot events")

	for {
		var ev models.SnapshotEvent
		if err = wsjson.Read(ctx, conn, &ev); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return errors.New("events stream closed by server")
			}
			return fmt.Errorf("%w: read event: %w", ErrNetwork, err)
		}
		fn(ev)
	}
}
