package betterwpdb

import (
	"context"
	"errors"
	"testing"
)

func TestBulkInsert_HappyPath(t *testing.T) {
	h := newTestDB(t)
	h.setupUsersTable()
	ctx := context.Background()

	n, err := h.db.BulkInsert(ctx, "users", []map[string]any{
		{"name": "Ada", "active": true},
		{"name": "Grace", "active": false},
		{"name": "Edsger", "active": true},
	})
	if err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 affected rows, got %d", n)
	}
	h.assertRowCount("users", 3)
	h.assertModeRestored()
}

func TestBulkInsert_KeySetMismatchRollsBack(t *testing.T) {
	h := newTestDB(t)
	h.setupUsersTable()
	ctx := context.Background()

	_, err := h.db.BulkInsert(ctx, "users", []map[string]any{
		{"name": "Ada"},
		{"email": "grace@example.com"},
		{"name": "Edsger"},
	})
	var shapeErr *RecordShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected RecordShapeError, got %v", err)
	}
	if shapeErr.Index != 2 {
		t.Fatalf("expected offending record 2, got %d", shapeErr.Index)
	}
	// Record 1 was already executed; the rollback must take it away.
	h.assertRowCount("users", 0)
}

func TestBulkInsert_TypeMismatchRollsBack(t *testing.T) {
	h := newTestDB(t)
	h.setupUsersTable()
	ctx := context.Background()

	_, err := h.db.BulkInsert(ctx, "users", []map[string]any{
		{"name": "Ada", "score": 1.5},
		{"name": "Grace", "score": "high"},
	})
	var shapeErr *RecordShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected RecordShapeError, got %v", err)
	}
	if shapeErr.Index != 2 {
		t.Fatalf("expected offending record 2, got %d", shapeErr.Index)
	}
	h.assertRowCount("users", 0)
}

func TestBulkInsert_NullVsValueIsShapeMismatch(t *testing.T) {
	h := newTestDB(t)
	h.setupUsersTable()
	ctx := context.Background()

	// nil contributes no type tag, so a nil in one record against a value
	// in another is a shape difference.
	_, err := h.db.BulkInsert(ctx, "users", []map[string]any{
		{"name": "Ada", "email": nil},
		{"name": "Grace", "email": "grace@example.com"},
	})
	var shapeErr *RecordShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected RecordShapeError, got %v", err)
	}
	h.assertRowCount("users", 0)
}

func TestBulkInsert_EmptyBatch(t *testing.T) {
	h := newTestDB(t)
	h.setupUsersTable()

	n, err := h.db.BulkInsert(context.Background(), "users", nil)
	if err != nil {
		t.Fatalf("empty batch: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 affected rows, got %d", n)
	}
}

func TestBulkInsert_EmptyFirstRecord(t *testing.T) {
	h := newTestDB(t)
	h.setupUsersTable()

	_, err := h.db.BulkInsert(context.Background(), "users", []map[string]any{{}})
	if !errors.Is(err, ErrNoColumns) {
		t.Fatalf("got %v, want ErrNoColumns", err)
	}
}

func TestBulkInsert_EmptyTableName(t *testing.T) {
	h := newTestDB(t)

	_, err := h.db.BulkInsert(context.Background(), "", []map[string]any{{"a": 1}})
	if !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("got %v, want ErrEmptyTable", err)
	}
}

func TestBulkInsert_PerRecordTelemetry(t *testing.T) {
	h := newTestDB(t)
	h.setupUsersTable()
	ctx := context.Background()

	sink := &captureLogger{}
	h.db.SetQueryLogger(sink)
	if _, err := h.db.BulkInsert(ctx, "users", []map[string]any{
		{"name": "Ada"},
		{"name": "Grace"},
	}); err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}

	// Two insert records plus begin and commit.
	var inserts int
	for _, r := range sink.records {
		if r.SQL != beginSQL && r.SQL != commitSQL {
			inserts++
		}
	}
	if inserts != 2 {
		t.Fatalf("expected one telemetry record per record executed, got %d", inserts)
	}
}
