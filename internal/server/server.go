// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/handler"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
)

// shutdownTimeout bounds the graceful stop of all transports.
const shutdownTimeout = 10 * time.Second

type server struct {
	transports []transport
	logger     *logger.Logger
}

// NewServer binds a listener for every handler present in handlers.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	s := &server{logger: logger}

	if handlers.HTTP != nil && cfg.HTTPAddress != "" {
		srv, err := newHTTPServer(handlers.HTTP.Init(), cfg.HTTPAddress, logger)
		if err != nil {
			return nil, fmt.Errorf("listen http on %s: %w", cfg.HTTPAddress, err)
		}
		s.transports = append(s.transports, srv)
	}
	if handlers.GRPC != nil && cfg.GRPCAddress != "" {
		srv, err := newGRPCServer(handlers.GRPC, cfg.GRPCAddress)
		if err != nil {
			s.closeAll()
			return nil, fmt.Errorf("listen grpc on %s: %w", cfg.GRPCAddress, err)
		}
		s.transports = append(s.transports, srv)
	}

	if len(s.transports) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

func (s *server) RunServer(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, t := range s.transports {
		g.Go(func() error {
			s.logger.Info().Str("transport", t.name()).Msg("launching server")
			if err := t.serve(); err != nil {
				return fmt.Errorf("%s server: %w", t.name(), err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, t := range s.transports {
			if err := t.shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("%s shutdown: %w", t.name(), err))
			}
		}
		return errors.Join(errs...)
	})

	err := g.Wait()
	if err == nil {
		s.logger.Info().Msg("server shut down gracefully")
	}
	return err
}

func (s *server) closeAll() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for _, t := range s.transports {
		_ = t.shutdown(ctx)
	}
}
