package simplify

import (
	"github.com/mudesheng/gasimplify/internal/dbg"
	"github.com/mudesheng/gasimplify/internal/dbg/condition"
	"github.com/mudesheng/gasimplify/internal/dbg/remove"
)

// ecStrategy is the common shape of EC strategies (B)-(G): a single pass
// over the graph that reports whether anything changed, so the driver
// (and strategies C/D/E themselves) can iterate to a fixed point, per
// spec section 4.7's closing paragraph.
type ecStrategy interface {
	Run(g *dbg.Graph) bool
}

// IterativeLowCoverage is strategy (A): given iteration i of N, remove
// every edge with length <= L_ec and coverage <= C_max*(i+1)/N, grounded
// on IterativeLowCoverageEdgeRemover (RemoveLowCoverageEdges in
// graph_simplification.hpp).
func IterativeLowCoverage(g *dbg.Graph, L int, cMax float64, i, n int) int {
	threshold := cMax * float64(i+1) / float64(n)
	cond := condition.And(
		condition.LengthUpperBound(L),
		condition.CoverageUpperBound(threshold),
	)
	return runRemovalPass(g, cond)
}

// runRemovalPass drives a length-ordered smart-edge iterator against cond
// and removes every matching edge through a shared remove.Remover,
// returning how many were removed. This is the one-shot-pass shape
// shared by tip clipping, bulge removal and most EC strategies (spec
// section 1's "shared shape" observation).
func runRemovalPass(g *dbg.Graph, cond condition.Condition) int {
	r := remove.New(g)
	it := dbg.NewSmartEdgeIterator(g)
	defer it.Close()
	for !it.IsEnd() {
		e, ok := it.Next()
		if !ok {
			break
		}
		if !g.IsValidEdge(e) {
			continue
		}
		if cond(g, e) {
			r.Remove(e)
		}
	}
	return r.Removed()
}

// RemoveIsolatedEdges deletes edges shorter than minLen whose endpoints
// both have total degree 1 (the edge is the vertex's sole connection to
// the rest of the graph), per spec section 4.7's closing "isolated-edge
// remover" paragraph. Run after any EC removal pass.
func RemoveIsolatedEdges(g *dbg.Graph, minLen int) int {
	cond := func(g *dbg.Graph, e dbg.EdgeID) bool {
		if g.Length(e) >= minLen {
			return false
		}
		start, end := g.EdgeStart(e), g.EdgeEnd(e)
		return g.InDegree(start)+g.OutDegree(start) == 1 && g.InDegree(end)+g.OutDegree(end) == 1
	}
	return runRemovalPass(g, cond)
}
