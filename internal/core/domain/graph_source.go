package domain

// GraphSource is a parsed graph together with the fingerprint of the exact bytes it was parsed
// from. Stored results are keyed by that fingerprint, never by a second read of the file.
type GraphSource struct {
	Graph       *Graph
	Fingerprint uint64
}
