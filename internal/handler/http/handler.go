// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/service"
)

// maxPushBody bounds a snapshot push.
const maxPushBody = 8 << 20

type Handler struct {
	services *service.Services

	hashKey        string
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.ServerApp, srv config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		hashKey:        app.HashKey,
		requestTimeout: srv.RequestTimeout,
		logger:         logger,
	}
}
