package betterwpdb

import (
	"context"
	"strings"
)

// primaryKeyColumn is the conventional primary key targeted by
// UpdateByPrimary.
const primaryKeyColumn = "id"

// Insert adds one row built from a column-keyed record. Columns are
// emitted in sorted order so the generated SQL is deterministic.
func (db *DB) Insert(ctx context.Context, table string, record map[string]any) (Result, error) {
	if table == "" {
		return Result{}, ErrEmptyTable
	}
	cols := sortedKeys(record)
	if err := ValidateColumnNames(cols); err != nil {
		return Result{}, err
	}
	bindings := make([]any, len(cols))
	for i, c := range cols {
		bindings[i] = record[c]
	}
	return db.Exec(ctx, insertSQL(table, cols), bindings...)
}

// Update modifies every row matching conditions and returns the
// driver-reported affected-row count. Empty change or condition maps are
// rejected before anything reaches the connection.
func (db *DB) Update(ctx context.Context, table string, changes, conditions map[string]any) (int64, error) {
	if table == "" {
		return 0, ErrEmptyTable
	}
	if len(changes) == 0 {
		return 0, ErrEmptyChanges
	}
	cols := sortedKeys(changes)
	if err := ValidateColumnNames(cols); err != nil {
		return 0, err
	}
	where, condBindings, err := BuildConditions(conditions)
	if err != nil {
		return 0, err
	}

	sets := make([]string, len(cols))
	bindings := make([]any, 0, len(cols)+len(condBindings))
	for i, c := range cols {
		sets[i] = EscapeIdentifier(c) + " = ?"
		bindings = append(bindings, changes[c])
	}
	bindings = append(bindings, condBindings...)

	sqlText := "UPDATE " + EscapeIdentifier(table) +
		" SET " + strings.Join(sets, ", ") +
		" WHERE " + strings.Join(where, " AND ")
	res, err := db.Exec(ctx, sqlText, bindings...)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}

// UpdateByPrimary updates the row whose id column equals key. The primary
// key is excluded from the change set if present.
func (db *DB) UpdateByPrimary(ctx context.Context, table string, key any, changes map[string]any) (int64, error) {
	filtered := make(map[string]any, len(changes))
	for k, v := range changes {
		if k != primaryKeyColumn {
			filtered[k] = v
		}
	}
	return db.Update(ctx, table, filtered, map[string]any{primaryKeyColumn: key})
}

// Delete removes every row matching conditions and returns the number of
// rows removed. The empty-condition rejection in BuildConditions makes
// full-table deletes unreachable through this path.
func (db *DB) Delete(ctx context.Context, table string, conditions map[string]any) (int64, error) {
	if table == "" {
		return 0, ErrEmptyTable
	}
	where, bindings, err := BuildConditions(conditions)
	if err != nil {
		return 0, err
	}
	sqlText := "DELETE FROM " + EscapeIdentifier(table) +
		" WHERE " + strings.Join(where, " AND ")
	res, err := db.Exec(ctx, sqlText, bindings...)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}

// Exists reports whether at least one row matches conditions. The check
// is a bound integer EXISTS query, so nil condition values take the
// IS NULL path like every other condition.
func (db *DB) Exists(ctx context.Context, table string, conditions map[string]any) (bool, error) {
	if table == "" {
		return false, ErrEmptyTable
	}
	where, bindings, err := BuildConditions(conditions)
	if err != nil {
		return false, err
	}
	sqlText := "SELECT EXISTS(SELECT 1 FROM " + EscapeIdentifier(table) +
		" WHERE " + strings.Join(where, " AND ") + ")"
	v, err := db.SelectValue(ctx, sqlText, bindings...)
	if err != nil {
		return false, err
	}
	return isNonZero(v), nil
}

// insertSQL builds a single-row INSERT template with escaped identifiers
// and one placeholder per column.
func insertSQL(table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = EscapeIdentifier(c)
	}
	placeholders := strings.TrimRight(strings.Repeat("?,", len(cols)), ",")
	return "INSERT INTO " + EscapeIdentifier(table) +
		" (" + strings.Join(quoted, ",") + ") VALUES (" + placeholders + ")"
}

// isNonZero interprets a driver-typed scalar as a truth value.
func isNonZero(v any) bool {
	switch x := v.(type) {
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != "" && x != "0"
	case bool:
		return x
	}
	return false
}
