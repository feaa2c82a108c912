package betterwpdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLConnection adapts a dedicated *sql.Conn to the Connection
// capability. It owns exactly one session, which is what makes the
// session-variable and transaction-verb contract sound: every statement
// issued through it lands on the same wire connection.
type MySQLConnection struct {
	db   *sql.DB
	conn *sql.Conn

	strictReporting bool
	nativeNumerics  bool
}

var _ Connection = (*MySQLConnection)(nil)

// Open dials the database described by cfg and pins a single connection
// for the safety layer. The pool behind it is capped at one connection.
func Open(ctx context.Context, cfg Config) (*MySQLConnection, error) {
	dsn, err := dsnFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	driver := cfg.Driver
	if driver == "" {
		driver = "mysql"
	}
	pool, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(1)
	pool.SetMaxIdleConns(1)
	conn, err := pool.Conn(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &MySQLConnection{db: pool, conn: conn}, nil
}

// WrapConn adapts an existing pinned connection. Use it when the host
// application owns the pool; Close then releases only the wrapped
// connection.
func WrapConn(conn *sql.Conn) *MySQLConnection {
	return &MySQLConnection{conn: conn}
}

func (c *MySQLConnection) Prepare(ctx context.Context, query string) (Statement, error) {
	stmt, err := c.conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &sqlStatement{stmt: stmt}, nil
}

func (c *MySQLConnection) Exec(ctx context.Context, query string) error {
	_, err := c.conn.ExecContext(ctx, query)
	return err
}

// Transaction verbs are issued as plain statements on the pinned session
// rather than through database/sql's Tx type, which would route
// subsequent statements through a separate handle.
func (c *MySQLConnection) BeginTransaction(ctx context.Context) error { return c.Exec(ctx, beginSQL) }
func (c *MySQLConnection) Commit(ctx context.Context) error           { return c.Exec(ctx, commitSQL) }
func (c *MySQLConnection) Rollback(ctx context.Context) error         { return c.Exec(ctx, rollbackSQL) }

// SessionVariable reads @@SESSION.<name>. The guard only asks for known
// variables; the name is escaped anyway so this path stays inert.
func (c *MySQLConnection) SessionVariable(ctx context.Context, name string) (string, error) {
	var value string
	query := "SELECT @@SESSION." + EscapeIdentifier(name)
	if err := c.conn.QueryRowContext(ctx, query).Scan(&value); err != nil {
		return "", err
	}
	return value, nil
}

func (c *MySQLConnection) SetSessionVariable(ctx context.Context, name, value string) error {
	_, err := c.conn.ExecContext(ctx, "SET SESSION "+EscapeIdentifier(name)+" = ?", value)
	return err
}

// SetStrictReporting and SetNativeNumericTyping track the requested
// client-side behavior. go-sql-driver always surfaces server errors as
// values and binds natively through the binary protocol, so there is
// nothing to reconfigure on the wire; the flags exist so the guard's
// state is observable and so drivers that do distinguish the modes can
// implement the same interface.
func (c *MySQLConnection) SetStrictReporting(enabled bool) error {
	c.strictReporting = enabled
	return nil
}

func (c *MySQLConnection) SetNativeNumericTyping(enabled bool) error {
	c.nativeNumerics = enabled
	return nil
}

// StrictReporting reports the last requested strict-reporting state.
func (c *MySQLConnection) StrictReporting() bool { return c.strictReporting }

// NativeNumericTyping reports the last requested numeric-typing state.
func (c *MySQLConnection) NativeNumericTyping() bool { return c.nativeNumerics }

func (c *MySQLConnection) Close() error {
	err := c.conn.Close()
	if c.db != nil {
		if derr := c.db.Close(); err == nil {
			err = derr
		}
	}
	return err
}

// sqlStatement adapts *sql.Stmt to the Statement interface. It is shared
// by every database/sql-backed Connection in this package.
type sqlStatement struct {
	stmt *sql.Stmt
}

func (s *sqlStatement) Execute(ctx context.Context, tags []TypeTag, values []any) (Result, error) {
	// The inference rule guarantees at most one tag per value.
	if len(tags) > len(values) {
		return Result{}, fmt.Errorf("betterwpdb: %d type tags for %d values", len(tags), len(values))
	}
	res, err := s.stmt.ExecContext(ctx, values...)
	if err != nil {
		return Result{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Result{}, err
	}
	last, _ := res.LastInsertId()
	return Result{AffectedRows: affected, LastInsertID: last}, nil
}

func (s *sqlStatement) Query(ctx context.Context, tags []TypeTag, values []any) (Rows, error) {
	return s.stmt.QueryContext(ctx, values...)
}

func (s *sqlStatement) Close() error { return s.stmt.Close() }
