// Package store provides the DynamoDB data access layer for todo items.
//
// A single table holds every item, keyed by the string attribute "id", with
// one global secondary index keyed on "status".
//
// # Accessing the table
//
// [Accessor] lazily opens a [Table] on first use and hands back the same
// handle for the rest of the process lifetime. It is safe for concurrent use:
//
//	acc := store.NewAccessor(cfg)
//	tbl, err := acc.Table(ctx)
//	if errors.Is(err, store.ErrMissingTableName) {
//	    // TABLE_NAME was not configured
//	}
//
// Set Config.Endpoint to target DynamoDB Local or another compatible
// endpoint; placeholder credentials and region are used in that mode.
//
// # Operations
//
// Every operation touches exactly one item (or one bounded page) and performs
// a single request. Nothing is retried here; retry policy belongs to the SDK
// client.
//
//   - [Table.Put] writes an item unconditionally.
//   - [Table.Get] returns [ErrNotFound] for a missing key.
//   - [Table.Scan] reads at most one page of up to Config.ScanLimit items.
//   - [Table.QueryByStatus] reads one page from the status index.
//   - [Table.Update] applies a SET expression and returns the new attributes.
//     Updating a missing key creates it.
//   - [Table.Delete] deletes unconditionally; a missing key is not an error.
//
// [Table.EnsureTable] and [Table.Seed] provision and populate a table for
// local development.
//
// # Errors
//
//   - [ErrNotFound] - no item at the key
//   - [ErrMissingTableName] - Config.TableName is empty
package store
