package betterwpdb

import (
	"fmt"
	"sort"
	"strings"
)

// EscapeIdentifier quotes a table or column name for interpolation into
// generated SQL, doubling embedded backticks so the input can never
// terminate the quoted name. It is the only mechanism by which
// identifiers enter SQL built in this package.
func EscapeIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// ValidateColumnNames checks that names is non-empty and contains no
// empty entries.
func ValidateColumnNames(names []string) error {
	if len(names) == 0 {
		return ErrNoColumns
	}
	for i, n := range names {
		if n == "" {
			return fmt.Errorf("%w: column %d is empty", ErrInvalidColumn, i+1)
		}
	}
	return nil
}

// BuildConditions renders a condition map as ordered "`col` = ?"
// fragments plus the parallel binding list. Keys are sorted so generated
// SQL is deterministic. A nil value renders as "`col` IS NULL" and
// contributes no binding, since IS NULL cannot be parameterized. An empty
// map is rejected with ErrEmptyConditions.
func BuildConditions(conditions map[string]any) (clauses []string, bindings []any, err error) {
	if len(conditions) == 0 {
		return nil, nil, ErrEmptyConditions
	}
	keys := sortedKeys(conditions)
	if err := ValidateColumnNames(keys); err != nil {
		return nil, nil, err
	}
	clauses = make([]string, 0, len(keys))
	for _, k := range keys {
		if conditions[k] == nil {
			clauses = append(clauses, EscapeIdentifier(k)+" IS NULL")
			continue
		}
		clauses = append(clauses, EscapeIdentifier(k)+" = ?")
		bindings = append(bindings, conditions[k])
	}
	return clauses, bindings, nil
}

// sortedKeys canonicalizes a record's column order; Go maps are unordered
// and generated SQL must not be.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
