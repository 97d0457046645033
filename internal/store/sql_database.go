package store

import (
	"database/sql"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/migrations"
)

// DB wraps the standard sql.DB handle together with the logger and, on the
// server side, a driver-specific error classifier.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// MigrateClient applies the embedded SQLite schema migrations.
func (db *DB) MigrateClient() error {
	return migrations.MigrateClient(db.DB)
}

// MigrateServer applies the embedded PostgreSQL schema migrations.
func (db *DB) MigrateServer() error {
	return migrations.MigrateServer(db.DB)
}
