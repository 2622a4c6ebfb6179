// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the local store, the remote adapter, the tab coordinator, the
// sync services, the legacy bridge, background workers and the terminal UI
// into a single process lifecycle.
package client
