// Package condition implements the composable boolean-predicate algebra
// over edges described in spec section 4.3, grounded on
// original_source/assembler/src/include/simplification/tip_clipper.hpp's
// TipCondition/RelativeCoverageTipCondition/MismatchTipCondition/
// ATCondition/DeadEndCondition family and the pred::And/Or/Not combinators
// used throughout graph_simplification.hpp.
//
// A Condition is a pure function over the current graph state, the
// closure-based representation spec section 9 selects over a tagged
// variant (the teacher's own predicate helpers — IsBubbleEdge,
// IsMergedNode — are plain functions, never data-described variants).
package condition

import (
	"github.com/mudesheng/gasimplify/internal/dbg"
)

// Condition is a pure predicate over an edge.
type Condition func(g *dbg.Graph, e dbg.EdgeID) bool

// And returns a condition true iff every cs is true. An empty And is
// vacuously true.
func And(cs ...Condition) Condition {
	return func(g *dbg.Graph, e dbg.EdgeID) bool {
		for _, c := range cs {
			if !c(g, e) {
				return false
			}
		}
		return true
	}
}

// Or returns a condition true iff any cs is true. An empty Or is
// vacuously false.
func Or(cs ...Condition) Condition {
	return func(g *dbg.Graph, e dbg.EdgeID) bool {
		for _, c := range cs {
			if c(g, e) {
				return true
			}
		}
		return false
	}
}

// Not negates c.
func Not(c Condition) Condition {
	return func(g *dbg.Graph, e dbg.EdgeID) bool { return !c(g, e) }
}

// LengthUpperBound: length(e) <= L.
func LengthUpperBound(L int) Condition {
	return func(g *dbg.Graph, e dbg.EdgeID) bool { return g.Length(e) <= L }
}

// CoverageUpperBound: coverage(e) <= C.
func CoverageUpperBound(C float64) Condition {
	return func(g *dbg.Graph, e dbg.EdgeID) bool { return g.Coverage(e) <= C }
}

// maxCompetitorCoverage returns the highest coverage among e's
// competitors: other edges out of e's start, or into e's end, per
// RelativeCoverageTipCondition::MaxCompetitorCoverage.
func maxCompetitorCoverage(g *dbg.Graph, e dbg.EdgeID) float64 {
	var max float64
	start, end := g.EdgeStart(e), g.EdgeEnd(e)
	for _, o := range g.OutgoingEdges(start) {
		if o != e {
			if c := g.Coverage(o); c > max {
				max = c
			}
		}
	}
	for _, in := range g.IncomingEdges(end) {
		if in != e {
			if c := g.Coverage(in); c > max {
				max = c
			}
		}
	}
	return max
}

// RelativeCoverage: coverage(e) <= alpha * (max competitor coverage + 1).
// The "+1" absorbs edges of zero coverage produced by earlier iterative
// passes, per the original's comment ("a trick to deal with edges of 0
// coverage from iterative run").
func RelativeCoverage(alpha float64) Condition {
	return func(g *dbg.Graph, e dbg.EdgeID) bool {
		return g.Coverage(e) <= alpha*(maxCompetitorCoverage(g, e)+1)
	}
}

func isTipVertex(g *dbg.Graph, v dbg.VertexID) bool {
	return g.InDegree(v)+g.OutDegree(v) == 1
}

func isDeadEndVertex(g *dbg.Graph, v dbg.VertexID) bool {
	return g.InDegree(v) == 0 || g.OutDegree(v) == 0
}

// TipShape: e's start or end is a tip vertex (total degree 1), and the
// competing degree at the other end exceeds 2, per TipCondition::Check
// and the derived-entity definition in spec section 3.
func TipShape(g *dbg.Graph, e dbg.EdgeID) bool {
	start, end := g.EdgeStart(e), g.EdgeEnd(e)
	if !isTipVertex(g, start) && !isTipVertex(g, end) {
		return false
	}
	return g.OutDegree(start)+g.InDegree(end) > 2
}

// DeadEndShape: e's start or end has in*out == 0 (a true dead end, no
// alternative path need exist there), with combined opposite degree >= 1,
// per DeadEndCondition::Check. Weaker than TipShape: no alternative-path
// requirement.
func DeadEndShape(g *dbg.Graph, e dbg.EdgeID) bool {
	start, end := g.EdgeStart(e), g.EdgeEnd(e)
	startDead := g.InDegree(start)*g.OutDegree(start) == 0
	endDead := g.InDegree(end)*g.OutDegree(end) == 0
	if !startDead && !endDead {
		return false
	}
	return g.OutDegree(end)+g.InDegree(start) >= 1
}

// TipOf composes TipShape with an additional condition, per
// AddTipCondition/NecessaryTipCondition in tip_clipper.hpp.
func TipOf(c Condition) Condition {
	return And(TipShape, c)
}

// DeadEndOf composes DeadEndShape with an additional condition, per
// AddDeadEndCondition.
func DeadEndOf(c Condition) Condition {
	return And(DeadEndShape, c)
}

// MismatchTip: there is a parallel outgoing alternative from e's start
// that is longer than e and within Hamming distance d of e over their
// shared prefix, or the symmetric check holds on e's conjugate, per
// MismatchTipCondition::Check.
func MismatchTip(d int) Condition {
	var check func(g *dbg.Graph, e dbg.EdgeID) bool
	check = func(g *dbg.Graph, e dbg.EdgeID) bool {
		el := g.Length(e)
		for _, alt := range g.OutgoingEdges(g.EdgeStart(e)) {
			if alt == e {
				continue
			}
			if g.Length(alt) > el && dbg.Hamming(g.Sequence(e), g.Sequence(alt)) <= d {
				return true
			}
		}
		return false
	}
	return func(g *dbg.Graph, e dbg.EdgeID) bool {
		if check(g, e) {
			return true
		}
		if g.HasConjugate() {
			return check(g, g.EdgeConjugate(e))
		}
		return false
	}
}

// ATContent: length(e) <= L, and within the tip-proximal window of e's
// sequence (the whole sequence when tipOnly is false), the most frequent
// base exceeds rho * windowSize, per ATCondition::Check. Window selection
// is taken verbatim from tip_clipper.hpp: when the edge's end has no
// outgoing edges, score everything but the first k bases; otherwise, when
// its start has no incoming edges, score everything but the last k bases;
// when neither is a dead end, ATContent never fires for a tip-only check.
func ATContent(rho float64, L int, tipOnly bool) Condition {
	return func(g *dbg.Graph, e dbg.EdgeID) bool {
		if g.Length(e) > L {
			return false
		}
		seq := g.Sequence(e)
		start, end := 0, len(seq)
		if tipOnly {
			endDead := g.OutDegree(g.EdgeEnd(e)) == 0
			startDead := g.InDegree(g.EdgeStart(e)) == 0
			switch {
			case endDead:
				start = g.K
			case startDead:
				end = len(seq) - g.K
			default:
				return false
			}
		}
		if start >= end {
			return false
		}
		return dbg.MaxBaseFraction(seq, start, end) > rho
	}
}

