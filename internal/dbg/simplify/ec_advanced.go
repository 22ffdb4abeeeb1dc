package simplify

import (
	"github.com/mudesheng/gasimplify/internal/dbg"
	"github.com/mudesheng/gasimplify/internal/dbg/remove"
)

// topologyCheating is strategy (B): remove a short edge when one of its
// neighbor edges has a coverage gap (ratio to the candidate's coverage
// >= cfg.CoverageGap) and that neighbor's length >= cfg.
// SufficientNeighbourLength, grounded on
// TopologyBasedChimericEdgeRemover's intent
// (CheatingRemoveErroneousEdges in graph_simplification.hpp).
type topologyCheating struct {
	L   int
	cfg ECConfig
}

func (s topologyCheating) hasGapNeighbour(g *dbg.Graph, e dbg.EdgeID) bool {
	ecov := g.Coverage(e)
	check := func(neighbours []dbg.EdgeID) bool {
		for _, n := range neighbours {
			if n == e {
				continue
			}
			if g.Length(n) < s.cfg.SufficientNeighbourLength {
				continue
			}
			nc := g.Coverage(n)
			if ecov == 0 {
				if nc > 0 {
					return true
				}
				continue
			}
			if nc/ecov >= s.cfg.CoverageGap {
				return true
			}
		}
		return false
	}
	start, end := g.EdgeStart(e), g.EdgeEnd(e)
	return check(g.OutgoingEdges(start)) || check(g.IncomingEdges(start)) ||
		check(g.OutgoingEdges(end)) || check(g.IncomingEdges(end))
}

func (s topologyCheating) Run(g *dbg.Graph) bool {
	r := remove.New(g)
	it := dbg.NewSmartEdgeIterator(g)
	defer it.Close()
	for !it.IsEnd() {
		e, ok := it.Next()
		if !ok {
			break
		}
		if !g.IsValidEdge(e) || g.Length(e) > s.L {
			continue
		}
		if s.hasGapNeighbour(g, e) {
			r.Remove(e)
		}
	}
	return r.Removed() > 0
}

// isUniqueEdge reports whether e's length marks it as presumed-unique in
// the source genome, per the GLOSSARY's "Uniqueness length" entry.
func isUniqueEdge(g *dbg.Graph, e dbg.EdgeID, uniquenessLength int) bool {
	return g.Length(e) >= uniquenessLength
}

// hasUniqueAndPlausibleContext reports whether, among the edges incident
// to v other than e, there is at least one uniqueness-length unique edge
// and at least one plausibility-length long edge — the topological
// signature of a spurious bridge between well-supported regions (spec
// section 4.7, strategy C).
func hasUniqueAndPlausibleContext(g *dbg.Graph, v dbg.VertexID, e dbg.EdgeID, uniquenessLength, plausibilityLength int) bool {
	var others []dbg.EdgeID
	for _, o := range g.OutgoingEdges(v) {
		if o != e {
			others = append(others, o)
		}
	}
	for _, o := range g.IncomingEdges(v) {
		if o != e {
			others = append(others, o)
		}
	}
	hasUnique, hasPlausible := false, false
	for _, o := range others {
		if isUniqueEdge(g, o, uniquenessLength) {
			hasUnique = true
		}
		if g.Length(o) >= plausibilityLength {
			hasPlausible = true
		}
	}
	return hasUnique && hasPlausible
}

// advancedTopology is strategy (C): remove short edges whose context at
// both endpoints contains a uniqueness-length unique edge and a
// plausibility-length long alternative, per
// AdvancedTopologyChimericEdgeRemover's intent
// (TopologyRemoveErroneousEdges in graph_simplification.hpp). Iterates
// to fixed point via RunToFixedPoint.
type advancedTopology struct {
	L   int
	cfg ECConfig
}

func (s advancedTopology) Run(g *dbg.Graph) bool {
	r := remove.New(g)
	it := dbg.NewSmartEdgeIterator(g)
	defer it.Close()
	for !it.IsEnd() {
		e, ok := it.Next()
		if !ok {
			break
		}
		if !g.IsValidEdge(e) || g.Length(e) > s.L {
			continue
		}
		start, end := g.EdgeStart(e), g.EdgeEnd(e)
		if hasUniqueAndPlausibleContext(g, start, e, s.cfg.UniquenessLength, s.cfg.PlausibilityLength) &&
			hasUniqueAndPlausibleContext(g, end, e, s.cfg.UniquenessLength, s.cfg.PlausibilityLength) {
			r.Remove(e)
		}
	}
	return r.Removed() > 0
}

// estimateMultiplicity approximates an edge's copy-number in the source
// genome as its coverage divided by the graph's single-copy coverage
// estimate (the highest-coverage uniqueness-length-or-longer edge
// incident to either endpoint), a simple multiplicity estimator standing
// in for SimpleMultiplicityCountingChimericEdgeRemover, whose full
// counting algorithm is not in the retrieved header set (spec section
// 4.7, strategy D: "uses simple multiplicity estimation rather than
// topology").
func estimateMultiplicity(g *dbg.Graph, e dbg.EdgeID, uniquenessLength int) float64 {
	singleCopyCov := singleCopyCoverageEstimate(g, g.EdgeStart(e), uniquenessLength)
	if c := singleCopyCoverageEstimate(g, g.EdgeEnd(e), uniquenessLength); c > singleCopyCov {
		singleCopyCov = c
	}
	if singleCopyCov == 0 {
		return 0
	}
	return g.Coverage(e) / singleCopyCov
}

func singleCopyCoverageEstimate(g *dbg.Graph, v dbg.VertexID, uniquenessLength int) float64 {
	var best float64
	for _, e := range append(g.OutgoingEdges(v), g.IncomingEdges(v)...) {
		if isUniqueEdge(g, e, uniquenessLength) {
			if c := g.Coverage(e); c > best {
				best = c
			}
		}
	}
	return best
}

// multiplicityCounting is strategy (D).
type multiplicityCounting struct {
	L   int
	cfg ECConfig
}

func (s multiplicityCounting) Run(g *dbg.Graph) bool {
	r := remove.New(g)
	it := dbg.NewSmartEdgeIterator(g)
	defer it.Close()
	for !it.IsEnd() {
		e, ok := it.Next()
		if !ok {
			break
		}
		if !g.IsValidEdge(e) || g.Length(e) > s.L {
			continue
		}
		if estimateMultiplicity(g, e, s.cfg.UniquenessLength) < 1 {
			r.Remove(e)
		}
	}
	return r.Removed() > 0
}

// topologyAndReliability is strategy (E): requires a uniqueness-length
// neighbor at either end (a one-sided form of strategy C's context check,
// with the uniqueness length also used as the plausibility length) and
// removes edges whose coverage is
// below the configured unreliable absolute threshold, per
// TopologyAndReliablityBasedChimericEdgeRemover's intent
// (TopologyReliabilityRemoveErroneousEdges). Chained with a thorn pass
// that removes short side-branches between unique edges.
type topologyAndReliability struct {
	L   int
	cfg ECConfig
}

func (s topologyAndReliability) Run(g *dbg.Graph) bool {
	r := remove.New(g)
	it := dbg.NewSmartEdgeIterator(g)
	defer it.Close()
	for !it.IsEnd() {
		e, ok := it.Next()
		if !ok {
			break
		}
		if !g.IsValidEdge(e) || g.Length(e) > s.L {
			continue
		}
		start, end := g.EdgeStart(e), g.EdgeEnd(e)
		uniqueContext := hasUniqueAndPlausibleContext(g, start, e, s.cfg.UniquenessLength, s.cfg.UniquenessLength) ||
			hasUniqueAndPlausibleContext(g, end, e, s.cfg.UniquenessLength, s.cfg.UniquenessLength)
		if uniqueContext && g.Coverage(e) < s.cfg.UnreliableThreshold {
			r.Remove(e)
		}
	}
	return r.Removed() > 0
}

// thornRemover eliminates short side-branches found directly between two
// uniqueness-length unique edges (spec section 4.7, strategy E's chained
// pass), grounded on ThornRemover's intent in
// TopologyReliabilityRemoveErroneousEdges.
type thornRemover struct {
	L                int
	uniquenessLength int
}

func (s thornRemover) Run(g *dbg.Graph) bool {
	r := remove.New(g)
	it := dbg.NewSmartEdgeIterator(g)
	defer it.Close()
	for !it.IsEnd() {
		e, ok := it.Next()
		if !ok {
			break
		}
		if !g.IsValidEdge(e) || g.Length(e) > s.L {
			continue
		}
		start, end := g.EdgeStart(e), g.EdgeEnd(e)
		startUnique := hasAnyUnique(g, g.IncomingEdges(start), s.uniquenessLength)
		endUnique := hasAnyUnique(g, g.OutgoingEdges(end), s.uniquenessLength)
		if startUnique && endUnique && g.OutDegree(start) > 1 && g.InDegree(end) > 1 {
			r.Remove(e)
		}
	}
	return r.Removed() > 0
}

func hasAnyUnique(g *dbg.Graph, edges []dbg.EdgeID, uniquenessLength int) bool {
	for _, e := range edges {
		if isUniqueEdge(g, e, uniquenessLength) {
			return true
		}
	}
	return false
}

// RunToFixedPoint repeatedly runs an ecStrategy until a pass reports no
// change, per spec section 4.7's closing paragraph ("iteration-mode
// strategies self-loop until false"), detecting divergence with a hard
// cap per spec section 5 ("implementations must detect divergence").
func RunToFixedPoint(s ecStrategy, g *dbg.Graph, hardCap int) bool {
	changedAny := false
	for i := 0; i < hardCap; i++ {
		if !s.Run(g) {
			return changedAny
		}
		changedAny = true
	}
	logDivergence("RunToFixedPoint", hardCap)
	return changedAny
}
