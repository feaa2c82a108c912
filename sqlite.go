package betterwpdb

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// SQLiteConnection implements Connection over an in-memory or file-backed
// SQLite database. Session variables and the strict toggles are emulated
// in process, which is enough to exercise the guard and the full query
// surface without a MySQL server. It exists for tests, both this
// package's and those of consumers.
type SQLiteConnection struct {
	db   *sql.DB
	conn *sql.Conn

	vars            map[string]string
	strictReporting bool
	nativeNumerics  bool
}

var _ Connection = (*SQLiteConnection)(nil)

// NewSQLiteConnection opens dsn (":memory:" works) and pins a single
// connection, mirroring the MySQL adapter's one-session model.
func NewSQLiteConnection(ctx context.Context, dsn string) (*SQLiteConnection, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteConnection{
		db:   db,
		conn: conn,
		vars: map[string]string{sqlModeVariable: ""},
	}, nil
}

func (c *SQLiteConnection) Prepare(ctx context.Context, query string) (Statement, error) {
	stmt, err := c.conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &sqlStatement{stmt: stmt}, nil
}

func (c *SQLiteConnection) Exec(ctx context.Context, query string) error {
	_, err := c.conn.ExecContext(ctx, query)
	return err
}

// SQLite spells transaction start BEGIN rather than START TRANSACTION.
func (c *SQLiteConnection) BeginTransaction(ctx context.Context) error { return c.Exec(ctx, "BEGIN") }
func (c *SQLiteConnection) Commit(ctx context.Context) error           { return c.Exec(ctx, commitSQL) }
func (c *SQLiteConnection) Rollback(ctx context.Context) error         { return c.Exec(ctx, rollbackSQL) }

// SessionVariable and SetSessionVariable emulate MySQL session state in
// process; SQLite has no equivalent of sql_mode. Unknown variables read
// as the empty string.
func (c *SQLiteConnection) SessionVariable(_ context.Context, name string) (string, error) {
	return c.vars[name], nil
}

func (c *SQLiteConnection) SetSessionVariable(_ context.Context, name, value string) error {
	c.vars[name] = value
	return nil
}

func (c *SQLiteConnection) SetStrictReporting(enabled bool) error {
	c.strictReporting = enabled
	return nil
}

func (c *SQLiteConnection) SetNativeNumericTyping(enabled bool) error {
	c.nativeNumerics = enabled
	return nil
}

// StrictReporting reports the emulated strict-reporting state.
func (c *SQLiteConnection) StrictReporting() bool { return c.strictReporting }

// NativeNumericTyping reports the emulated numeric-typing state.
func (c *SQLiteConnection) NativeNumericTyping() bool { return c.nativeNumerics }

func (c *SQLiteConnection) Close() error {
	err := c.conn.Close()
	if derr := c.db.Close(); err == nil {
		err = derr
	}
	return err
}
