package betterwpdb

import (
	"context"
	"time"
)

// Exec prepares and runs a parameterized write statement in strict mode,
// returning the driver-reported result. Bind types are inferred from the
// runtime values on every call.
func (db *DB) Exec(ctx context.Context, sqlText string, bindings ...any) (Result, error) {
	var out Result
	err := db.runGuarded(ctx, func(ctx context.Context) error {
		res, err := db.exec(ctx, sqlText, bindings)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	return out, err
}

// Unprepared runs a statement without parameter binding. Use it only for
// statements the server cannot prepare (DDL, SET, and friends).
func (db *DB) Unprepared(ctx context.Context, sqlText string) error {
	return db.runGuarded(ctx, func(ctx context.Context) error {
		start := time.Now()
		err := db.conn.Exec(ctx, sqlText)
		end := time.Now()
		if err != nil {
			return newQueryError(sqlText, nil, err)
		}
		db.logger.Record(ctx, QueryInfo{StartedAt: start, FinishedAt: end, SQL: sqlText})
		return nil
	})
}

// exec is the prepared-execution core: validate and normalize bindings,
// prepare, execute with timing captured tightly around the execute step,
// and emit one telemetry record on success. Failures are converted to
// QueryErrors before the telemetry call is reached, so failed executions
// do not produce records. Must run inside runGuarded.
func (db *DB) exec(ctx context.Context, sqlText string, bindings []any) (Result, error) {
	values, tags, err := normalizeBindings(bindings)
	if err != nil {
		return Result{}, err
	}
	stmt, err := db.conn.Prepare(ctx, sqlText)
	if err != nil {
		return Result{}, newQueryError(sqlText, bindings, err)
	}
	defer stmt.Close()

	start := time.Now()
	res, err := stmt.Execute(ctx, tags, values)
	end := time.Now()
	if err != nil {
		return Result{}, newQueryError(sqlText, bindings, err)
	}
	db.logger.Record(ctx, QueryInfo{StartedAt: start, FinishedAt: end, SQL: sqlText, Bindings: bindings})
	return res, nil
}

// query is the result-returning sibling of exec. The returned cursor owns
// the prepared statement; closing the cursor closes both. Must run inside
// runGuarded, and the cursor must be drained before the guarded scope
// exits.
func (db *DB) query(ctx context.Context, sqlText string, bindings []any) (Rows, error) {
	values, tags, err := normalizeBindings(bindings)
	if err != nil {
		return nil, err
	}
	stmt, err := db.conn.Prepare(ctx, sqlText)
	if err != nil {
		return nil, newQueryError(sqlText, bindings, err)
	}

	start := time.Now()
	rows, err := stmt.Query(ctx, tags, values)
	end := time.Now()
	if err != nil {
		stmt.Close()
		return nil, newQueryError(sqlText, bindings, err)
	}
	db.logger.Record(ctx, QueryInfo{StartedAt: start, FinishedAt: end, SQL: sqlText, Bindings: bindings})
	return &stmtRows{Rows: rows, stmt: stmt}, nil
}

// stmtRows ties the prepared statement's lifetime to its cursor.
type stmtRows struct {
	Rows
	stmt Statement
}

func (r *stmtRows) Close() error {
	err := r.Rows.Close()
	if serr := r.stmt.Close(); err == nil {
		err = serr
	}
	return err
}
