// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress is a host:port pair implementing flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line flags shared by the client and the server.
//
// Flags:
//
//	-a               server HTTP address host:port
//	-grpc-address    server gRPC address host:port
//	-d               PostgreSQL DSN
//	-local-db        client SQLite file path
//	-data-dir        client per-device data directory
//	-c/-config       JSON config file path
//	-token           client access token
//	-token-sign-key  token signing key
//	-token-issuer    token issuer
//	-token-duration  token lifetime (e.g. 720h)
//	-request-timeout server request timeout
//	-hash-key        body integrity HMAC key
//	-remote          client remote store base URL
//	-remote-grpc     client remote store gRPC address
//	-transport       client transport: http or grpc
//	-remember-key    remember the recovery key on this device
//	-legacy-events   JSON Lines file of legacy store events to import
//	-otel-endpoint   OTLP/HTTP collector URL
//	-subject         user id to mint a token for
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("omnifolio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress, grpcServerAddress NetAddress
	cfg := &StructuredConfig{}

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.Local.Path, "local-db", "", "Local SQLite database path")
	fs.StringVar(&cfg.App.DataDir, "data-dir", "", "Per-device data directory")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.Token, "token", "", "Access token")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 720h)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s)")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "Body integrity hash key")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "remote", "", "Remote store base URL")
	fs.StringVar(&cfg.Adapter.GRPCAddress, "remote-grpc", "", "Remote store gRPC address")
	fs.StringVar(&cfg.Adapter.Transport, "transport", "", "Remote transport: http or grpc")
	fs.BoolVar(&cfg.App.RememberKey, "remember-key", false, "Remember the recovery key on this device")
	fs.StringVar(&cfg.App.LegacyEvents, "legacy-events", "", "JSON Lines file of legacy store events to import")
	fs.StringVar(&cfg.Telemetry.Endpoint, "otel-endpoint", "", "OTLP/HTTP collector URL")
	fs.StringVar(&cfg.App.Subject, "subject", "", "User id to mint a token for")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.GRPCAddress = grpcServerAddress.String()

	return cfg, nil
}

// String returns host:port, or "" when nothing is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, found := strings.Cut(s, ":")
	if !found || strings.Contains(portStr, ":") {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "localhost" && host != "" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

var _ flag.Value = (*NetAddress)(nil)

