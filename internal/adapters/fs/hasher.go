// Package fs fingerprints the graph and settings a query result depends on.
package fs

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/trail/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash fingerprints of query inputs.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeQueryHash computes a single hash representing the loaded graph, the query endpoints
// and waypoints, and the counting strategy. Waypoint order does not affect the result.
func (h *Hasher) ComputeQueryHash(graphFingerprint uint64, q domain.Query, strategy domain.Strategy) (string, error) {
	hasher := xxhash.New()
	if err := binary.Write(hasher, binary.LittleEndian, graphFingerprint); err != nil {
		return "", zerr.Wrap(err, "failed to write hash to digest")
	}
	_, _ = hasher.Write([]byte{0})

	writeField(hasher, q.Start)
	writeField(hasher, q.Target)
	for _, w := range q.SortedWaypoints() {
		writeField(hasher, w)
	}
	_, _ = hasher.Write([]byte{0}) // Section separator

	writeField(hasher, string(strategy))

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func writeField(hasher *xxhash.Digest, s string) {
	_, _ = hasher.WriteString(s)
	_, _ = hasher.Write([]byte{0})
}
