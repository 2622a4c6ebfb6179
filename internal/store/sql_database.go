// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds the persistence layer of omnifolio: the client's
// SQLite database with the locally cached snapshot and device secrets, and
// the server's Postgres table of encrypted snapshots.
package store

import (
	"database/sql"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/migrations"
)

// DB is a database handle shared by the repositories of one storage.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	dialect            string
}

const (
	dialectSQLite   = "sqlite3"
	dialectPostgres = "postgres"
)

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	if db.dialect == dialectPostgres {
		return migrations.MigratePostgres(db.DB)
	}
	return migrations.MigrateSQLite(db.DB)
}

// classify reports how a failed query should be treated. Without a
// classifier every error is final.
func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}
