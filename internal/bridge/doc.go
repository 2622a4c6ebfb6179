// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package bridge connects pre-migration data stores to the canonical state.
//
// Older stores announce their data as named events (cryptoDataChanged,
// stockDataChanged, tradingDataChanged, financialDataChanged). The bridge
// turns each of them into one state action and, in the other direction,
// publishes appStateChanged and appStateUpdated for every new revision so
// legacy views can follow the canonical state without depending on it.
package bridge
