package domain

import "time"

// CountRecord is the persisted outcome of a query, keyed by query name and validated by the
// fingerprint of the inputs it was computed from.
type CountRecord struct {
	QueryName   string    `json:"query_name,omitzero"`
	InputHash   string    `json:"input_hash,omitzero"`
	AllPaths    uint64    `json:"all_paths,omitzero"`
	Constrained uint64    `json:"constrained,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
