package dbg

// edge mirrors DBGEdge from constructdbg.go, trimmed to the attributes the
// simplification core actually reasons about: source, target, sequence,
// length and coverage. The teacher's PathMat/NGSPathArr/SeedInfoArr fields
// belong to the downstream mapping/resolver stages (out of scope, per
// spec section 1) and are not carried over.
type edge struct {
	id        EdgeID
	conjugate EdgeID
	start     VertexID
	end       VertexID
	seq       []byte // length >= k+1
	coverage  float64
	free      bool
}

// length returns |seq| - k, the edge's k-mer-overlap length.
func (e *edge) length(k int) int {
	return len(e.seq) - k
}
