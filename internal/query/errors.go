package query

import "errors"

var (
	// ErrInvalidFilter reports malformed filter bounds. The caller should
	// surface it next to the offending control and must not issue a query.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrStoreNotReady reports a query arriving before startup ingestion
	// has finished. The condition is transient and retryable.
	ErrStoreNotReady = errors.New("event store not ready")
)
