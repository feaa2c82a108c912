package betterwpdb

import "context"

// strictSQLMode is the session sql_mode forced while a guarded operation
// runs. TRADITIONAL turns warnings into errors and disables silent
// coercion on writes.
const strictSQLMode = "TRADITIONAL"

const sqlModeVariable = "sql_mode"

// guardState tracks the strict-mode toggle around guarded operations. The
// snapshot of the original sql_mode is captured lazily on first entry
// and, together with the activity flag, is cleared once the outermost
// call finishes.
type guardState struct {
	active        bool
	snapshot      string
	snapshotTaken bool
}

// runGuarded executes op with the connection in strict mode and restores
// the original configuration on every exit path, success or failure.
// Re-entrant calls run op directly, so only the outermost call touches
// session state and only it performs the restore. Failures while reading
// or switching the mode are ConfigErrors: the connection is considered
// unusable and the error propagates untouched.
func (db *DB) runGuarded(ctx context.Context, op func(context.Context) error) (err error) {
	if db.guard.active {
		return op(ctx)
	}

	if !db.guard.snapshotTaken {
		mode, verr := db.conn.SessionVariable(ctx, sqlModeVariable)
		if verr != nil {
			return &ConfigError{Op: "read session " + sqlModeVariable, Err: verr}
		}
		db.guard.snapshot = mode
		db.guard.snapshotTaken = true
	}

	if serr := db.enterStrictMode(ctx); serr != nil {
		// Best effort: do not leave a half-switched session behind.
		_ = db.restoreMode(ctx)
		db.guard.snapshot = ""
		db.guard.snapshotTaken = false
		return serr
	}
	db.guard.active = true

	defer func() {
		restoreErr := db.restoreMode(ctx)
		db.guard.active = false
		db.guard.snapshot = ""
		db.guard.snapshotTaken = false
		if err == nil {
			err = restoreErr
		}
	}()

	return op(ctx)
}

func (db *DB) enterStrictMode(ctx context.Context) error {
	if err := db.conn.SetStrictReporting(true); err != nil {
		return &ConfigError{Op: "enable strict reporting", Err: err}
	}
	if err := db.conn.SetNativeNumericTyping(true); err != nil {
		return &ConfigError{Op: "enable native numeric typing", Err: err}
	}
	if err := db.conn.SetSessionVariable(ctx, sqlModeVariable, db.strictMode); err != nil {
		return &ConfigError{Op: "set strict " + sqlModeVariable, Err: err}
	}
	return nil
}

// restoreMode puts the session back the way enterStrictMode found it. It
// attempts every step even after a failure and reports the first error.
func (db *DB) restoreMode(ctx context.Context) error {
	var first error
	if err := db.conn.SetStrictReporting(false); err != nil {
		first = &ConfigError{Op: "restore error reporting", Err: err}
	}
	if err := db.conn.SetNativeNumericTyping(false); err != nil && first == nil {
		first = &ConfigError{Op: "restore numeric typing", Err: err}
	}
	if err := db.conn.SetSessionVariable(ctx, sqlModeVariable, db.guard.snapshot); err != nil && first == nil {
		first = &ConfigError{Op: "restore " + sqlModeVariable, Err: err}
	}
	return first
}
