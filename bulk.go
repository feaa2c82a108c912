package betterwpdb

import (
	"context"
	"slices"
	"time"
)

// BulkInsert inserts an ordered batch of records atomically. One INSERT
// statement is prepared from the first record's shape and reused for the
// whole batch; only the bound values change per record. Every record must
// share the first record's column set and inferred type-tag sequence; a
// mismatch aborts with a RecordShapeError naming the 1-based offending
// index, and the surrounding transaction rolls back so no partial batch
// is committed.
//
// The return value is the sum of driver-reported affected-row counts.
// For plain inserts that equals the record count; upsert-style statements
// follow whatever the driver reports per execution.
func (db *DB) BulkInsert(ctx context.Context, table string, records []map[string]any) (int64, error) {
	if table == "" {
		return 0, ErrEmptyTable
	}
	if len(records) == 0 {
		return 0, nil
	}
	cols := sortedKeys(records[0])
	if err := ValidateColumnNames(cols); err != nil {
		return 0, err
	}

	var total int64
	err := db.Transactional(ctx, func(tx *DB) error {
		sqlText := insertSQL(table, cols)
		stmt, err := tx.conn.Prepare(ctx, sqlText)
		if err != nil {
			return newQueryError(sqlText, nil, err)
		}
		defer stmt.Close()

		var expected []TypeTag
		for i, record := range records {
			recCols := sortedKeys(record)
			raw := make([]any, len(recCols))
			for j, c := range recCols {
				raw[j] = record[c]
			}
			values, tags, err := normalizeBindings(raw)
			if err != nil {
				return err
			}
			if i == 0 {
				expected = tags
			} else if !slices.Equal(recCols, cols) || !slices.Equal(tags, expected) {
				return &RecordShapeError{
					Index:           i + 1,
					ExpectedColumns: cols,
					ActualColumns:   recCols,
					ExpectedTags:    tagString(expected),
					ActualTags:      tagString(tags),
				}
			}

			start := time.Now()
			res, err := stmt.Execute(ctx, tags, values)
			end := time.Now()
			if err != nil {
				return newQueryError(sqlText, raw, err)
			}
			tx.logger.Record(ctx, QueryInfo{StartedAt: start, FinishedAt: end, SQL: sqlText, Bindings: raw})
			total += res.AffectedRows
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
