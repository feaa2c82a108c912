// Package betterwpdb is a safety layer between application code and a
// MySQL-family connection whose session is configured for lenient,
// warning-based error behavior, as legacy CMS database layers typically
// are. For the duration of each operation the layer switches the session
// into strict, error-raising mode, executes parameterized statements
// with bind types inferred from the runtime values, and restores the
// original configuration before returning, so legacy code sharing the
// connection is unaffected.
//
// # Core pieces
//
//   - A connection state guard that snapshots the session's sql_mode on
//     first use, forces TRADITIONAL while an operation runs, and restores
//     the snapshot on every exit path. The guard is re-entrant: nested
//     operations within one top-level call skip reconfiguration.
//   - A statement builder that validates bindings (primitive scalars or
//     nil only), normalizes booleans to 1/0, and infers a type tag per
//     value at execution time.
//   - A transaction coordinator with commit-on-success,
//     rollback-on-any-failure, and explicit rejection of nesting.
//   - A bulk-insert path that prepares one statement per batch, checks
//     every record against the first record's shape, and runs atomically.
//   - Identifier escaping and condition building that keep dynamically
//     constructed SQL injection-safe.
//
// Every executed statement is reported to a pluggable telemetry sink as
// a QueryInfo record; the default sink discards records. SlogQueryLogger
// and OTelQueryLogger provide structured logging and tracing.
//
// # Usage
//
//	cfg := betterwpdb.Config{Host: "localhost", Port: 3306, Username: "wp",
//		Password: "secret", Database: "wordpress"}
//	db, err := betterwpdb.NewFromConfig(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	_, err = db.Insert(ctx, "users", map[string]any{"name": "Ada", "active": true})
//
//	err = db.Transactional(ctx, func(tx *betterwpdb.DB) error {
//		if _, err := tx.Insert(ctx, "orders", order); err != nil {
//			return err
//		}
//		_, err := tx.UpdateByPrimary(ctx, "inventory", itemID, changes)
//		return err
//	})
//
// # Concurrency
//
// A DB wraps exactly one connection and performs no internal
// parallelism. Its guard and transaction flags are plain instance state;
// callers that share a DB across goroutines must serialize access
// themselves. While a guarded call is active, no other code may mutate
// the connection's session configuration.
//
// Table and column names passed to the query surface must come from
// trusted code. Escaping makes them structurally safe, but they are not
// allow-listed.
package betterwpdb
