package solver

import "errors"

var (
	// ErrNodeNotFound indicates the source, or every target, is absent from
	// the graph snapshot the query ran against.
	ErrNodeNotFound = errors.New("solver: node not found")

	// ErrNoPathFound indicates no target is reachable under the query's
	// constraints. This is a valid negative result, not a system fault.
	ErrNoPathFound = errors.New("solver: no path found")

	// ErrNoTargets indicates the query listed no targets at all.
	ErrNoTargets = errors.New("solver: query has no targets")
)
