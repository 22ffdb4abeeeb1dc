package simplify

import (
	"log"

	"github.com/exascience/pargo/parallel"
	"github.com/mudesheng/gasimplify/internal/dbg"
)

// EditDistanceTracker computes, purely observationally, the edit distance
// between each accepted bulge edge and its replacement path's merged
// sequence, logging the result. It never affects acceptance (spec
// section 4.6: "does not affect acceptance"), grounded on
// EditDistanceTrackingCallback in graph_simplification.hpp.
//
// Because a bulge-removal pass can accept many bulges, the edit-distance
// computations for one pass are run concurrently with pargo's
// fork-join Do, matching spec section 5's carve-out that "parallelism is
// confined to optional observational work (edit-distance logging)". Each
// worker only reads state copied when the path was accepted (the edge id
// and the sequences of e and of the path edges), never touching the graph
// concurrently with the single-threaded mutator.
type EditDistanceTracker struct {
	g      *dbg.Graph
	jobs   []func()
}

func NewEditDistanceTracker(g *dbg.Graph) *EditDistanceTracker {
	return &EditDistanceTracker{g: g}
}

// Callback returns a PathFoundCallback that queues an edit-distance
// computation for e and p instead of computing it inline, so a whole
// bulge-removal pass's worth of logging work can be flushed concurrently
// at Wait.
func (t *EditDistanceTracker) Callback() PathFoundCallback {
	return func(g *dbg.Graph, e dbg.EdgeID, p []dbg.EdgeID) {
		eSeq := append([]byte(nil), g.Sequence(e)...)
		pSeqs := make([][]byte, len(p))
		for i, pe := range p {
			pSeqs[i] = append([]byte(nil), g.Sequence(pe)...)
		}
		k := g.K
		t.jobs = append(t.jobs, func() {
			merged := pSeqs[0]
			for _, s := range pSeqs[1:] {
				merged = dbg.OverlapMerge(merged, s, k)
			}
			d := editDistanceBanded(eSeq, merged, len(eSeq)+len(merged))
			log.Printf("[EditDistanceTracker] bulge edge %v vs path: edit distance %d", e, d)
		})
	}
}

// Wait runs every queued edit-distance job concurrently and blocks until
// all complete, then clears the queue.
func (t *EditDistanceTracker) Wait() {
	if len(t.jobs) == 0 {
		return
	}
	parallel.Do(t.jobs...)
	t.jobs = nil
}
