// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
)

const readHeaderTimeout = 10 * time.Second

type httpServer struct {
	server   *http.Server
	listener net.Listener

	// cancel ends the base context of every request, which closes the
	// long-lived websocket subscriptions Shutdown does not track.
	cancel context.CancelFunc
}

func newHTTPServer(handler http.Handler, address string, logger *logger.Logger) (*httpServer, error) {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}

	base, cancel := context.WithCancel(logger.WithContext(context.Background()))
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	srv.RegisterOnShutdown(cancel)

	return &httpServer{server: srv, listener: lis, cancel: cancel}, nil
}

func (h *httpServer) serve() error {
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *httpServer) shutdown(ctx context.Context) error {
	defer h.cancel()
	err := h.server.Shutdown(ctx)
	// Shutdown only closes listeners Serve has seen
	_ = h.listener.Close()
	return err
}

func (h *httpServer) name() string { return "http" }
