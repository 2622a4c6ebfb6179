// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"

	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
)

// NewClient builds the [Client] for the configured transport.
func NewClient(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (Client, error) {
	switch adapterCfg.Transport {
	case config.TransportHTTP, "":
		return NewHTTPRemoteStore(adapterCfg, appCfg, logger)
	case config.TransportGRPC:
		return NewGRPCRemoteStore(adapterCfg, appCfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTransport, adapterCfg.Transport)
	}
}
