// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command token mints a bearer token for the remote store.
//
//	APP_TOKEN_SIGN_KEY=secret token -subject alice
//
// The printed token goes into the client's APP_TOKEN.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/service"
)

func main() {
	log := logger.NewLogger("omnifolio-token")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Subject == "" || cfg.App.TokenSignKey == "" {
		fmt.Fprintln(os.Stderr, "usage: token -token-sign-key <key> -subject <user-id> [-token-issuer <iss>] [-token-duration <d>]")
		os.Exit(2)
	}

	auth := service.NewAuthService(config.ServerApp{
		TokenSignKey:  cfg.App.TokenSignKey,
		TokenIssuer:   cfg.App.TokenIssuer,
		TokenDuration: cfg.App.TokenDuration,
	}, log)

	token, err := auth.CreateToken(context.Background(), cfg.App.Subject)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token")
	}

	fmt.Println(token.String())
}
