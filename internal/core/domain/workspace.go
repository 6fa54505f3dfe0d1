package domain

// Workspace is a loaded trail.yaml: one graph file and the queries to run against it.
type Workspace struct {
	// Input is the path of the graph file, already resolved against the workspace directory.
	Input string
	// Strategy selects the constrained counting strategy for every query.
	Strategy Strategy
	// Parallelism bounds how many queries run at once. Zero means one per CPU.
	Parallelism int
	// Queries are kept sorted by name.
	Queries []Query
}

// Query returns the query with the given name.
func (w *Workspace) Query(name string) (Query, bool) {
	for _, q := range w.Queries {
		if q.Name == name {
			return q, true
		}
	}
	return Query{}, false
}
