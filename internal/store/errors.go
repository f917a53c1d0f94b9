package store

import "errors"

// Error categories returned by Store operations. Each returned error wraps
// exactly one of these plus the underlying driver error, so callers can
// check the category with errors.Is and still print the cause.
var (
	// ErrStorageUnavailable means the database could not be opened or the
	// schema could not be created. The store is unusable.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrQueryFailed means a read statement could not execute.
	ErrQueryFailed = errors.New("query failed")
	// ErrWriteFailed means a write statement could not execute.
	ErrWriteFailed = errors.New("write failed")
)
