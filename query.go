package betterwpdb

import (
	"context"
	"errors"
)

// errStopIteration is returned by internal scan callbacks to stop a scan
// loop cleanly. It never escapes this package.
var errStopIteration = errors.New("betterwpdb: stop iteration")

// SelectAll runs a query and returns every matching row as a
// column-keyed map.
func (db *DB) SelectAll(ctx context.Context, sqlText string, bindings ...any) ([]map[string]any, error) {
	var out []map[string]any
	err := db.runGuarded(ctx, func(ctx context.Context) error {
		rows, err := db.query(ctx, sqlText, bindings)
		if err != nil {
			return err
		}
		defer rows.Close()
		return scanRows(rows, func(row map[string]any) error {
			out = append(out, row)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SelectRow returns the first matching row, or ErrNoMatchingRows when the
// query succeeds but matches nothing.
func (db *DB) SelectRow(ctx context.Context, sqlText string, bindings ...any) (map[string]any, error) {
	var out map[string]any
	err := db.runGuarded(ctx, func(ctx context.Context) error {
		rows, err := db.query(ctx, sqlText, bindings)
		if err != nil {
			return err
		}
		defer rows.Close()
		found := false
		if err := scanRows(rows, func(row map[string]any) error {
			out = row
			found = true
			return errStopIteration
		}); err != nil {
			return err
		}
		if !found {
			return ErrNoMatchingRows
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SelectValue returns the first column of the first matching row, or
// ErrNoMatchingRows.
func (db *DB) SelectValue(ctx context.Context, sqlText string, bindings ...any) (any, error) {
	var out any
	err := db.runGuarded(ctx, func(ctx context.Context) error {
		rows, err := db.query(ctx, sqlText, bindings)
		if err != nil {
			return err
		}
		defer rows.Close()
		cols, err := rows.Columns()
		if err != nil {
			return err
		}
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return err
			}
			return ErrNoMatchingRows
		}
		buf := make([]any, len(cols))
		scan := make([]any, len(cols))
		for i := range buf {
			scan[i] = &buf[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return err
		}
		out = normalizeScanned(buf[0])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SelectLazy streams matching rows one at a time through fn, holding only
// the cursor. Returning an error from fn stops iteration and surfaces
// that error unchanged; stopping early is the cancellation mechanism.
// Iteration is forward-only and restarts from scratch if the call is
// repeated.
func (db *DB) SelectLazy(ctx context.Context, sqlText string, fn func(map[string]any) error, bindings ...any) error {
	return db.runGuarded(ctx, func(ctx context.Context) error {
		rows, err := db.query(ctx, sqlText, bindings)
		if err != nil {
			return err
		}
		defer rows.Close()
		return scanRows(rows, fn)
	})
}

// scanRows drives a cursor through fn, one column-keyed map per row.
// errStopIteration from fn ends the loop cleanly; any other error
// surfaces unchanged.
func scanRows(rows Rows, fn func(map[string]any) error) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	buf := make([]any, len(cols))
	scan := make([]any, len(cols))
	for i := range buf {
		scan[i] = &buf[i]
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return err
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			row[c] = normalizeScanned(buf[i])
		}
		if err := fn(row); err != nil {
			if errors.Is(err, errStopIteration) {
				return nil
			}
			return err
		}
	}
	return rows.Err()
}

// normalizeScanned converts driver []byte payloads to string so rows stay
// valid after the cursor advances and compare naturally in tests.
func normalizeScanned(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
