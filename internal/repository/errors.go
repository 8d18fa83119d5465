package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// invalidTextRepresentation is raised by Postgres when an id is not a valid uuid.
const invalidTextRepresentation = "22P02"

// notFoundOnBadID maps a malformed id rejected by Postgres to sql.ErrNoRows: no row can match it.
func notFoundOnBadID(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation {
		return sql.ErrNoRows
	}
	return err
}
