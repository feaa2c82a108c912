package betterwpdb

import (
	"context"
	"testing"
)

// testDB bundles a DB over an in-memory SQLite connection with the
// helpers the tests lean on.
type testDB struct {
	t    *testing.T
	conn *SQLiteConnection
	db   *DB
}

func newTestDB(t *testing.T) *testDB {
	t.Helper()
	ctx := context.Background()
	conn, err := NewSQLiteConnection(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return &testDB{t: t, conn: conn, db: New(conn)}
}

// mustExec runs DDL or setup SQL through the unprepared path.
func (h *testDB) mustExec(sqlText string) {
	h.t.Helper()
	if err := h.db.Unprepared(context.Background(), sqlText); err != nil {
		h.t.Fatalf("exec %q: %v", sqlText, err)
	}
}

func (h *testDB) setupUsersTable() {
	h.mustExec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT,
		active INTEGER,
		score REAL
	)`)
}

func (h *testDB) rowCount(table string) int {
	h.t.Helper()
	v, err := h.db.SelectValue(context.Background(), "SELECT COUNT(*) FROM "+EscapeIdentifier(table))
	if err != nil {
		h.t.Fatalf("count %s: %v", table, err)
	}
	n, ok := v.(int64)
	if !ok {
		h.t.Fatalf("count %s: unexpected type %T", table, v)
	}
	return int(n)
}

func (h *testDB) assertRowCount(table string, expected int) {
	h.t.Helper()
	if actual := h.rowCount(table); actual != expected {
		h.t.Fatalf("expected %d rows in %s, got %d", expected, table, actual)
	}
}

// assertModeRestored checks that the emulated session is back in its
// lenient pre-call configuration.
func (h *testDB) assertModeRestored() {
	h.t.Helper()
	mode, err := h.conn.SessionVariable(context.Background(), sqlModeVariable)
	if err != nil {
		h.t.Fatalf("read sql_mode: %v", err)
	}
	if mode != "" {
		h.t.Fatalf("sql_mode not restored, still %q", mode)
	}
	if h.conn.StrictReporting() {
		h.t.Fatal("strict reporting still enabled after call")
	}
	if h.conn.NativeNumericTyping() {
		h.t.Fatal("native numeric typing still enabled after call")
	}
}

// captureLogger records every QueryInfo it receives.
type captureLogger struct {
	records []QueryInfo
}

func (c *captureLogger) Record(_ context.Context, info QueryInfo) {
	c.records = append(c.records, info)
}
