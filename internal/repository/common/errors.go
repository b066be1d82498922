package common

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// pgUniqueViolation - SQLSTATE нарушения уникальности в Postgres.
const pgUniqueViolation = "23505"

// IsUniqueViolation распознаёт нарушение уникальности для Postgres и SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	// modernc.org/sqlite: "constraint failed: UNIQUE constraint failed: users.email (2067)"
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
