package errors

// SQLite-specific helpers for mapping modernc sqlite errors to project ErrorCode

import (
	stderrs "errors"
	"fmt"

	sqlite3 "modernc.org/sqlite/lib"
)

// sqliteCoder is satisfied by *sqlite.Error from modernc.org/sqlite
// kept as an interface so callers and tests do not depend on the driver type
type sqliteCoder interface {
	error
	Code() int
}

// ExtractSQLiteCode returns the extended result code if the root cause is a sqlite error
func ExtractSQLiteCode(err error) (int, bool) {
	var c sqliteCoder
	if err != nil && stderrs.As(err, &c) {
		return c.Code(), true
	}
	return 0, false
}

// primary strips the extended bits, e.g. SQLITE_CONSTRAINT_PRIMARYKEY -> SQLITE_CONSTRAINT
func primary(code int) int { return code & 0xff }

// DBErrorCode maps a sqlite error to an ErrorCode with an ok flag
// !ok means err wasn't a sqlite error; caller may fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	code, ok := ExtractSQLiteCode(err)
	if !ok {
		return ErrorCodeUnknown, false
	}

	switch code {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return ErrorCodeDuplicateKey, true
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_CONSTRAINT_CHECK:
		return ErrorCodeValidation, true
	}

	switch primary(code) {
	case sqlite3.SQLITE_CONSTRAINT, sqlite3.SQLITE_MISMATCH, sqlite3.SQLITE_TOOBIG:
		return ErrorCodeInvalidArgument, true
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return ErrorCodeUnavailable, true
	case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_READONLY, sqlite3.SQLITE_FULL, sqlite3.SQLITE_IOERR:
		// the backing file is unusable; fatal for a single writer
		return ErrorCodeDB, true
	}

	return ErrorCodeDB, true
}

// FromSQLite wraps a sqlite error with a mapped ErrorCode and message.
// Non sqlite errors become ErrorCodeDB. If err is nil, returns nil
func FromSQLite(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// FromSQLitef is the formatted variant of FromSQLite
func FromSQLitef(err error, format string, a ...any) error {
	return FromSQLite(err, fmt.Sprintf(format, a...))
}
