// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/utils"
	"github.com/MKhiriev/go-omnifolio/models"
)

const (
	statePath  = "/api/state"
	healthPath = "/api/health"
	eventsPath = "/api/state/events"
)

type httpRemoteStore struct {
	client *utils.HTTPClient

	hashKey string
	token   string

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs the REST implementation of [Client] for the
// base URL in adapterCfg.HTTPAddress. A bare host:port gets an http scheme.
func NewHTTPRemoteStore(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (Client, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	return &httpRemoteStore{
		client:  client,
		hashKey: appCfg.HashKey,
		token:   strings.TrimSpace(appCfg.Token),
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Push implements [RemoteStore]. It POSTs req to /api/state; the body is
// signed in the HashSHA256 header when a hash key is configured.
func (h *httpRemoteStore) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("encode push request: %w", err)
	}

	var pushed models.PushResponse
	request := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&pushed)
	if h.hashKey != "" {
		request.SetHeader(utils.HashSHA256Header, utils.HashString(body, h.hashKey))
	}

	resp, err := request.Post(statePath)
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: push request: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("func", "httpRemoteStore.Push").Int64("rev", req.Rev).Msg("push rejected")
		return models.PushResponse{}, err
	}

	return pushed, nil
}

// Pull implements [RemoteStore] with GET /api/state.
func (h *httpRemoteStore) Pull(ctx context.Context) (models.PullResponse, error) {
	var pulled models.PullResponse
	resp, err := h.authedRequest(ctx).
		SetResult(&pulled).
		Get(statePath)
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: pull request: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PullResponse{}, err
	}

	if pulled.Exists && pulled.Data == nil {
		return models.PullResponse{}, fmt.Errorf("%w: snapshot marked as existing but missing", ErrUnexpectedResponse)
	}

	return pulled, nil
}

// Ping implements [Pinger] with GET /api/health.
func (h *httpRemoteStore) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get(healthPath)
	if err != nil {
		return fmt.Errorf("%w: health request: %w", ErrNetwork, err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteStore) Close() error {
	h.client.GetClient().CloseIdleConnections()
	return nil
}

func (h *httpRemoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req
}
