// Package database implements the repositories on PostgreSQL via sqlx.
package database

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core"
)

// Open connects to the configured database and pings it.
func Open() (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", core.Conf.DatabaseDSN)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}
	return db, nil
}
