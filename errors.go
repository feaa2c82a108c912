package betterwpdb

import (
	"errors"
	"fmt"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
)

// Sentinel errors, checked with errors.Is. They cover the invalid-argument
// cases that are caught before anything reaches the connection.
var (
	// ErrEmptyTable is returned when an operation receives an empty table name.
	ErrEmptyTable = errors.New("betterwpdb: table name must not be empty")

	// ErrNoColumns is returned when a record or column list is empty.
	ErrNoColumns = errors.New("betterwpdb: no columns specified")

	// ErrInvalidColumn is returned when a column name is empty.
	ErrInvalidColumn = errors.New("betterwpdb: column names must be non-empty")

	// ErrEmptyConditions rejects condition-less UPDATE/DELETE; unconditional
	// full-table writes are not reachable through this package.
	ErrEmptyConditions = errors.New("betterwpdb: empty condition map; unconditional writes are not allowed")

	// ErrEmptyChanges is returned when an update has nothing to set.
	ErrEmptyChanges = errors.New("betterwpdb: no changes specified")

	// ErrInvalidBinding is returned for bind values that are not primitive
	// scalars or nil.
	ErrInvalidBinding = errors.New("betterwpdb: bindings must be primitive scalars or nil")

	// ErrNoMatchingRows is returned by single-row fetches that find no row.
	// The query itself succeeded; this is not a QueryError.
	ErrNoMatchingRows = errors.New("betterwpdb: query matched no rows")

	// ErrNestedTransaction is returned when Transactional is entered while
	// a transaction is already active. Two BEGIN/COMMIT pairs on one
	// connection do not compose, so nesting is rejected outright.
	ErrNestedTransaction = errors.New("betterwpdb: a transaction is already active on this connection")
)

// QueryError wraps a driver failure together with the SQL text and the
// bindings that produced it, so failures are diagnosable without
// re-running the statement under logging.
type QueryError struct {
	SQL      string
	Bindings []any
	Err      error
}

func (e *QueryError) Error() string {
	if len(e.Bindings) == 0 {
		return fmt.Sprintf("betterwpdb: query failed: %v [sql: %s]", e.Err, e.SQL)
	}
	return fmt.Sprintf("betterwpdb: query failed: %v [sql: %s, bindings: %v]", e.Err, e.SQL, e.Bindings)
}

func (e *QueryError) Unwrap() error { return e.Err }

func newQueryError(sqlText string, bindings []any, err error) *QueryError {
	return &QueryError{SQL: sqlText, Bindings: bindings, Err: err}
}

// ConfigError reports a failure to read, switch, or restore the session
// error mode. It indicates an unusable connection and is never handled
// inside this package; the current unit of work should be abandoned.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("betterwpdb: connection configuration failed: %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RecordShapeError reports a bulk-insert record whose column set or
// inferred type-tag sequence differs from the shape defined by the first
// record of its batch. Index is 1-based.
type RecordShapeError struct {
	Index           int
	ExpectedColumns []string
	ActualColumns   []string
	ExpectedTags    string
	ActualTags      string
}

func (e *RecordShapeError) Error() string {
	return fmt.Sprintf(
		"betterwpdb: record %d does not match the batch shape: expected columns (%s) with types [%s], got columns (%s) with types [%s]",
		e.Index,
		strings.Join(e.ExpectedColumns, ", "), e.ExpectedTags,
		strings.Join(e.ActualColumns, ", "), e.ActualTags,
	)
}

// ErrorClass buckets driver errors by MySQL error number. The layer never
// retries on its own; classification exists so callers that implement a
// retry policy can make the call.
type ErrorClass int

const (
	ErrClassUnknown ErrorClass = iota
	ErrClassRetryable
	ErrClassConflict
	ErrClassReadonly
	ErrClassConstraint
)

// Classify inspects err for a MySQL error number and buckets it.
func Classify(err error) ErrorClass {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return ErrClassUnknown
	}
	switch me.Number {
	case 1205, 1213: // lock wait timeout, deadlock
		return ErrClassRetryable
	case 1062: // duplicate entry
		return ErrClassConflict
	case 1290: // server running with --read-only
		return ErrClassReadonly
	case 1216, 1217, 1451, 1452, 3819: // foreign key and check violations
		return ErrClassConstraint
	}
	return ErrClassUnknown
}
