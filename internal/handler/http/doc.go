// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http serves the remote snapshot store over REST.
//
// Every /api/state route is authenticated with a bearer token whose subject
// is the user id. Pushes are integrity checked against the HashSHA256 header
// when the server has a hash key. GET /api/state/events upgrades to a
// websocket that streams a notification after every accepted push of the
// same user.
package http
