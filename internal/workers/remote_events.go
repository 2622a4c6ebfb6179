// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-omnifolio/internal/adapter"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/models"
)

// RemoteEventsWorker keeps the snapshot events stream open and hands every
// announced revision to the sync engine, which pulls when it leads.
type RemoteEventsWorker struct {
	source    EventsSource
	sink      RevisionSink
	reconnect time.Duration
	logger    *logger.Logger
}

func NewRemoteEventsWorker(source EventsSource, sink RevisionSink, reconnect time.Duration, logger *logger.Logger) *RemoteEventsWorker {
	return &RemoteEventsWorker{
		source:    source,
		sink:      sink,
		reconnect: reconnect,
		logger:    logger,
	}
}

// Run redials after every disconnect. A rejected token ends the worker
// with the error; redialing would be rejected as well.
func (w *RemoteEventsWorker) Run(ctx context.Context) error {
	for {
		err := w.source.Listen(ctx, func(ev models.SnapshotEvent) {
			if err := w.sink.OnRemoteRevision(ctx, ev.Rev); err != nil {
				w.logger.Warn().Err(err).Str("func", "RemoteEventsWorker.Run").Int64("rev", ev.Rev).Msg("failed to pull announced revision")
			}
		})
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, adapter.ErrUnauthorized) {
			w.logger.Error().Err(err).Str("func", "RemoteEventsWorker.Run").Msg("events subscription rejected")
			return err
		}
		w.logger.Debug().Err(err).Str("func", "RemoteEventsWorker.Run").Dur("retry_in", w.reconnect).Msg("events stream dropped")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(w.reconnect):
		}
	}
}
