package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownNode is returned when a label was never interned into the graph.
	ErrUnknownNode = zerr.New("unknown node")

	// ErrCycleDetected is returned when path counting meets a cycle that can still reach the target.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrEmptyLabel is returned when an edge endpoint has an empty label.
	ErrEmptyLabel = zerr.New("empty node label")

	// ErrMalformedLine is returned when an input line does not follow the "node: successor ..." format.
	ErrMalformedLine = zerr.New("malformed line")

	// ErrTooManyWaypoints is returned when the exact strategy is asked to track more waypoints than
	// fit in its remaining-set mask.
	ErrTooManyWaypoints = zerr.New("too many waypoints")

	// ErrUnknownStrategy is returned when a counting strategy name is not recognized.
	ErrUnknownStrategy = zerr.New("unknown counting strategy")

	// ErrInvalidQuery is returned when a query misses its start or target label.
	ErrInvalidQuery = zerr.New("invalid query")

	// ErrNoQueries is returned when a workspace declares no queries.
	ErrNoQueries = zerr.New("no queries defined")

	// ErrQueryNotFound is returned when a requested query name is not declared in the workspace.
	ErrQueryNotFound = zerr.New("query not found")

	// ErrMissingInput is returned when a workspace does not name its graph file.
	ErrMissingInput = zerr.New("missing input file")

	// ErrWatchUnavailable is returned when watch mode is requested without a file watcher.
	ErrWatchUnavailable = zerr.New("file watching is not available")
)
