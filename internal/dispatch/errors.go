package dispatch

import "errors"

var (
	// ErrRateLimited indicates the requester exhausted its token budget.
	// The query was rejected before any work happened; it is never queued.
	ErrRateLimited = errors.New("dispatch: rate limited")

	// ErrTimeout indicates the solve exceeded its wall-clock budget.
	ErrTimeout = errors.New("dispatch: solve timed out")

	// ErrNotReady indicates no graph snapshot has been loaded yet.
	ErrNotReady = errors.New("dispatch: graph not loaded")

	// ErrInternal indicates an unexpected solver failure. Details are logged,
	// not surfaced.
	ErrInternal = errors.New("dispatch: internal fault")
)
