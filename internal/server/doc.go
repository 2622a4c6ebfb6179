// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the enabled HTTP and gRPC transports of the remote
// snapshot store and stops them together.
package server
