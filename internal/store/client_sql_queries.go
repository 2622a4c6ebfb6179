// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	getLocalState = `
		SELECT
			payload
		FROM app_states
		WHERE user_id = ?;`

	saveLocalState = `
		INSERT INTO app_states (
			user_id,
			rev,
			schema_version,
			payload,
			updated_at
		) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			rev            = excluded.rev,
			schema_version = excluded.schema_version,
			payload        = excluded.payload,
			updated_at     = excluded.updated_at;`

	getDeviceSecret = `
		SELECT
			secret
		FROM device_secrets
		WHERE id = 1;`

	saveDeviceSecret = `
		INSERT INTO device_secrets (id, secret) VALUES (1, ?)
		ON CONFLICT (id) DO NOTHING;`

	getRememberedKey = `
		SELECT
			sealed
		FROM remembered_keys
		WHERE user_id = ?;`

	saveRememberedKey = `
		INSERT INTO remembered_keys (user_id, sealed) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET sealed = excluded.sealed;`

	deleteRememberedKey = `
		DELETE FROM remembered_keys
		WHERE user_id = ?;`
)
