package database

import (
	"errors"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// IsIntegrityViolation reports whether err is a constraint failure raised by
// the storage engine: unique, foreign key, check or not-null.
func IsIntegrityViolation(err error) bool {
	if err == nil {
		return false
	}

	// SQLSTATE class 23 covers every integrity constraint violation.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}

	// Extended result codes keep the primary code in the low byte.
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3lib.SQLITE_CONSTRAINT
	}

	return false
}

// IsDataException reports whether Postgres rejected a value itself, such as
// a NUL byte in text or a numeric overflow (SQLSTATE class 22).
func IsDataException(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "22"
	}
	return false
}
