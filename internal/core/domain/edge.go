package domain

// Edge is a directed connection between two labelled nodes, as produced by the line parser.
type Edge struct {
	From string
	To   string
}
