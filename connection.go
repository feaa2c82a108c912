package betterwpdb

import (
	"context"
	"database/sql"
)

// Connection is the raw database capability this layer drives. It is
// deliberately narrow: prepare/execute primitives, transaction verbs, and
// session configuration. A Connection owns exactly one database session;
// implementations are not safe for concurrent use and callers own any
// synchronization (see the package documentation).
type Connection interface {
	// Prepare compiles a parameterized statement on the session.
	Prepare(ctx context.Context, query string) (Statement, error)

	// Exec runs an unprepared statement, reporting only success or failure.
	Exec(ctx context.Context, query string) error

	// Transaction verbs, issued directly on the single session. Pairing
	// them correctly is the caller's responsibility; the coordinator in
	// this package is the only intended caller.
	BeginTransaction(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Session configuration. SessionVariable and SetSessionVariable read
	// and write server-side session state; the two toggles control
	// client-side error reporting and numeric typing where the driver
	// distinguishes them.
	SessionVariable(ctx context.Context, name string) (string, error)
	SetSessionVariable(ctx context.Context, name, value string) error
	SetStrictReporting(enabled bool) error
	SetNativeNumericTyping(enabled bool) error

	Close() error
}

// Statement is a prepared statement bound to one Connection. The tag
// sequence describes the non-nil values in order; nil values are bound as
// SQL NULL and carry no tag.
type Statement interface {
	// Execute binds values and runs the statement for its side effects.
	Execute(ctx context.Context, tags []TypeTag, values []any) (Result, error)

	// Query binds values and runs the statement for its result set.
	Query(ctx context.Context, tags []TypeTag, values []any) (Rows, error)

	Close() error
}

// Rows is a forward-only result cursor. *sql.Rows satisfies it.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

var _ Rows = (*sql.Rows)(nil)

// Result reports the outcome of a write statement.
type Result struct {
	AffectedRows int64
	LastInsertID int64
}
