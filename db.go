package betterwpdb

import "context"

// DB is the strict-mode safety layer over a single Connection. Every
// public operation runs with the session forced into strict,
// error-raising configuration and restores the original configuration
// before returning, so legacy code sharing the connection keeps its
// lenient behavior.
//
// A DB is bound to one connection and one logical thread of control; it
// is not safe for concurrent use without external synchronization.
type DB struct {
	conn   Connection
	logger QueryLogger

	guard guardState
	tx    txState

	strictMode string
}

// New wraps conn. Telemetry defaults to the no-op sink.
func New(conn Connection) *DB {
	return &DB{
		conn:       conn,
		logger:     NopLogger(),
		strictMode: strictSQLMode,
	}
}

// NewFromConfig opens a MySQL connection described by cfg and wraps it.
func NewFromConfig(ctx context.Context, cfg Config) (*DB, error) {
	conn, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

// SetQueryLogger installs the telemetry sink; nil restores the no-op sink.
func (db *DB) SetQueryLogger(logger QueryLogger) {
	if logger == nil {
		logger = NopLogger()
	}
	db.logger = logger
}

// Close closes the underlying connection.
func (db *DB) Close() error { return db.conn.Close() }
