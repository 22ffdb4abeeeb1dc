// Package dbg implements the mutable de Bruijn graph store: arena-backed
// vertices and edges, conjugate pairing, smart length-ordered iterators
// and local compression, matching the shape of DBGNode/DBGEdge in
// mudesheng/ga's constructdbg.go but generalized for use by the
// simplification core instead of the construction pipeline.
package dbg

import "fmt"

// VertexID is a stable arena index. 0 is the nil handle, matching the
// teacher's convention that node/edge ID 0 (and 1) are sentinels.
type VertexID uint32

// EdgeID is a stable arena index. 0 is the nil handle.
type EdgeID uint32

const (
	// NilVertex is the invalid vertex handle.
	NilVertex VertexID = 0
	// NilEdge is the invalid edge handle.
	NilEdge EdgeID = 0
)

func (v VertexID) String() string { return fmt.Sprintf("v%d", uint32(v)) }
func (e EdgeID) String() string   { return fmt.Sprintf("e%d", uint32(e)) }

// Checkpoint names an info-printer checkpoint per spec section 6.
type Checkpoint int

const (
	CheckpointBeforeSimplification Checkpoint = iota
	CheckpointTipClipping
	CheckpointBulgeRemoval
	CheckpointErrConRemoval
	CheckpointBeforeFinalErrConRemoval
	CheckpointFinalErrConRemoval
	CheckpointFinalTipClipping
	CheckpointFinalBulgeRemoval
	CheckpointRemovingIsolatedEdges
	CheckpointFinalSimplified
)

var checkpointNames = [...]string{
	"ipp_before_simplification",
	"ipp_tip_clipping",
	"ipp_bulge_removal",
	"ipp_err_con_removal",
	"ipp_before_final_err_con_removal",
	"ipp_final_err_con_removal",
	"ipp_final_tip_clipping",
	"ipp_final_bulge_removal",
	"ipp_removing_isolated_edges",
	"ipp_final_simplified",
}

func (c Checkpoint) String() string {
	if int(c) < 0 || int(c) >= len(checkpointNames) {
		return "ipp_unknown"
	}
	return checkpointNames[c]
}
