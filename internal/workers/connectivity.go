// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-omnifolio/internal/adapter"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
)

// ConnectivityWorker probes the remote store and reports whether the device
// is online. Only transport failures count as offline: a server that
// answers with an auth error is reachable.
type ConnectivityWorker struct {
	pinger   adapter.Pinger
	status   OnlineSetter
	interval time.Duration
	logger   *logger.Logger
}

func NewConnectivityWorker(pinger adapter.Pinger, status OnlineSetter, interval time.Duration, logger *logger.Logger) *ConnectivityWorker {
	return &ConnectivityWorker{
		pinger:   pinger,
		status:   status,
		interval: interval,
		logger:   logger,
	}
}

func (w *ConnectivityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	last := true
	for {
		online := w.probe(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if online != last {
			w.logger.Info().Str("func", "ConnectivityWorker.Run").Bool("online", online).Msg("connectivity changed")
			last = online
		}
		w.status.SetOnline(online)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *ConnectivityWorker) probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, w.interval)
	defer cancel()

	err := w.pinger.Ping(ctx)
	if err != nil && adapter.IsRetryable(err) {
		w.logger.Debug().Err(err).Str("func", "ConnectivityWorker.probe").Msg("remote store unreachable")
		return false
	}
	return true
}
