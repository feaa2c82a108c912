package betterwpdb

import (
	"context"
	"time"
)

const (
	beginSQL    = "START TRANSACTION"
	commitSQL   = "COMMIT"
	rollbackSQL = "ROLLBACK"
)

// txState is the transaction state machine: Idle or Active. The begin
// transition rejects nesting explicitly instead of letting a second
// BEGIN reach the wire.
type txState struct {
	active bool
}

func (s *txState) begin() error {
	if s.active {
		return ErrNestedTransaction
	}
	s.active = true
	return nil
}

func (s *txState) end() { s.active = false }

// Transactional runs fn atomically: commit on nil return, rollback on any
// failure, including a failing commit. fn receives the same DB, so the
// full query surface is available inside the transaction. Nested calls
// fail with ErrNestedTransaction before any state changes, leaving the
// outer transaction untouched. The whole sequence runs guarded, so
// mid-transaction errors still get strict-mode semantics and the session
// mode is restored afterwards.
func (db *DB) Transactional(ctx context.Context, fn func(*DB) error) error {
	return db.runGuarded(ctx, func(ctx context.Context) error {
		if err := db.tx.begin(); err != nil {
			return err
		}
		defer db.tx.end()

		beginStart := time.Now()
		if err := db.conn.BeginTransaction(ctx); err != nil {
			return newQueryError(beginSQL, nil, err)
		}
		beginEnd := time.Now()

		err := fn(db)
		if err == nil {
			commitStart := time.Now()
			err = db.conn.Commit(ctx)
			commitEnd := time.Now()
			if err == nil {
				db.logger.Record(ctx, QueryInfo{StartedAt: beginStart, FinishedAt: beginEnd, SQL: beginSQL})
				db.logger.Record(ctx, QueryInfo{StartedAt: commitStart, FinishedAt: commitEnd, SQL: commitSQL})
				return nil
			}
			err = newQueryError(commitSQL, nil, err)
		}

		// Roll back unconditionally; a rollback failure must not mask the
		// error that triggered it.
		_ = db.conn.Rollback(ctx)
		return err
	})
}
