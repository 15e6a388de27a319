package store

import "errors"

var (
	// ErrNotFound is returned when no item exists at the requested key.
	ErrNotFound = errors.New("store: item not found")

	// ErrMissingTableName is returned when the table name is not configured.
	ErrMissingTableName = errors.New("store: TABLE_NAME is not set")
)
