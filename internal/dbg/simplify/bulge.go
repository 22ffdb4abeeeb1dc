package simplify

import (
	"github.com/mudesheng/gasimplify/internal/dbg"
	"github.com/mudesheng/gasimplify/internal/dbg/remove"
)

// SimilarityPredicate vets an alternative path p found for candidate edge
// e before it is accepted, per spec section 4.6. SimplePathCondition and
// TrivialCondition below are its two canonical instances.
type SimilarityPredicate func(g *dbg.Graph, e dbg.EdgeID, p []dbg.EdgeID) bool

// TrivialCondition accepts every candidate path; used for non-conjugate
// graphs (spec section 4.6).
func TrivialCondition(g *dbg.Graph, e dbg.EdgeID, p []dbg.EdgeID) bool { return true }

// SimplePathCondition requires that p be simple (no repeated vertex) and
// internally disjoint from e's conjugate path, the stronger check
// conjugate graphs need because collapsing a bulge on one strand must
// collapse it consistently on the other (spec section 4.6).
func SimplePathCondition(g *dbg.Graph, e dbg.EdgeID, p []dbg.EdgeID) bool {
	seen := make(map[dbg.VertexID]bool)
	seen[g.EdgeStart(e)] = true
	for _, pe := range p {
		v := g.EdgeEnd(pe)
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	if !g.HasConjugate() {
		return true
	}
	ce := g.EdgeConjugate(e)
	for _, pe := range p {
		if pe == ce || g.EdgeConjugate(pe) == ce {
			return false
		}
	}
	return true
}

// PathFoundCallback is invoked, purely observationally, whenever a bulge
// path is accepted — spec section 4.6's "optional path-found callback"
// and "edit-distance tracking" hook (EditDistanceTrackingCallback in
// graph_simplification.hpp).
type PathFoundCallback func(g *dbg.Graph, e dbg.EdgeID, p []dbg.EdgeID)

// BulgeRemover collapses short parallel paths onto the higher-coverage
// alternative, per spec section 4.6, grounded on BulgeRemover's intent in
// graph_simplification.hpp (the actual search/collapse algorithm is not
// in the retrieved header set and is implemented here from the spec's
// algorithm paragraph).
type BulgeRemover struct {
	g          *dbg.Graph
	cfg        BulgeConfig
	similarity SimilarityPredicate
	onFound    PathFoundCallback
}

func NewBulgeRemover(g *dbg.Graph, cfg BulgeConfig, similarity SimilarityPredicate) *BulgeRemover {
	if similarity == nil {
		if g.HasConjugate() {
			similarity = SimplePathCondition
		} else {
			similarity = TrivialCondition
		}
	}
	return &BulgeRemover{g: g, cfg: cfg, similarity: similarity}
}

// OnPathFound registers the optional observational callback.
func (br *BulgeRemover) OnPathFound(cb PathFoundCallback) { br.onFound = cb }

// Run performs one bulge-removal pass at length bound L, per spec section
// 4.6's algorithm: iterate candidates in ascending length order, search
// for a qualifying alternative path, collapse onto it.
func (br *BulgeRemover) Run(L int) int {
	r := remove.New(br.g)
	it := dbg.NewSmartEdgeIterator(br.g)
	defer it.Close()
	for !it.IsEnd() {
		e, ok := it.Next()
		if !ok {
			break
		}
		if !br.g.IsValidEdge(e) {
			continue
		}
		if br.g.Length(e) > L || br.g.Coverage(e) > br.cfg.MaxCoverage {
			continue
		}
		p, ok := br.findAlternativePath(e, L)
		if !ok {
			continue
		}
		if br.onFound != nil {
			br.onFound(br.g, e, p)
		}
		br.collapse(e, p, r)
	}
	return r.Removed()
}

// findAlternativePath searches for a simple path from e's start to e's
// end, not using e, whose total length falls within
// [len(e)*(1-delta)-Delta, len(e)*(1+delta)+Delta] and whose minimum edge
// coverage is >= coverage(e)/alpha, bounded by MaxPathsExplored nodes
// explored (spec section 4.6, step 2). A bounded DFS is used since bulge
// paths are short by construction (L is itself small, a few k).
func (br *BulgeRemover) findAlternativePath(e dbg.EdgeID, L int) ([]dbg.EdgeID, bool) {
	g := br.g
	start, end := g.EdgeStart(e), g.EdgeEnd(e)
	el := g.Length(e)
	minLen := float64(el)*(1-br.cfg.MaxRelativeDelta) - br.cfg.MaxDelta
	maxLen := float64(el)*(1+br.cfg.MaxRelativeDelta) + br.cfg.MaxDelta
	minCov := g.Coverage(e) / br.cfg.MaxRelativeCoverage

	explored := 0
	var best []dbg.EdgeID

	var path []dbg.EdgeID
	var dfs func(v dbg.VertexID, length int, pathMinCov float64) bool
	dfs = func(v dbg.VertexID, length int, pathMinCov float64) bool {
		explored++
		if br.cfg.MaxPathsExplored > 0 && explored > br.cfg.MaxPathsExplored {
			return false
		}
		if float64(length) > maxLen {
			return false
		}
		if v == end && len(path) > 0 {
			if float64(length) >= minLen && pathMinCov >= minCov {
				cand := append([]dbg.EdgeID(nil), path...)
				if br.similarity(g, e, cand) {
					best = cand
					return true
				}
			}
		}
		for _, next := range g.OutgoingEdges(v) {
			if next == e {
				continue
			}
			nl := length + g.Length(next)
			if float64(nl) > maxLen {
				continue
			}
			nc := g.Coverage(next)
			newMin := nc
			if len(path) > 0 && pathMinCov < nc {
				newMin = pathMinCov
			}
			path = append(path, next)
			if dfs(g.EdgeEnd(next), nl, newMin) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}

	if dfs(start, 0, 0) {
		return best, true
	}
	return nil, false
}

// collapse re-routes e's coverage mass proportionally onto p's edges by
// length (cov += cov(e)*length(e)/length(p_edge)), then removes e (and
// its conjugate) through the shared remover so endpoint compression
// happens uniformly, per spec section 4.6, step 4.
func (br *BulgeRemover) collapse(e dbg.EdgeID, p []dbg.EdgeID, r *remove.Remover) {
	g := br.g
	el := g.Length(e)
	ecov := g.Coverage(e)
	for _, pe := range p {
		pl := g.Length(pe)
		if pl == 0 {
			continue
		}
		delta := ecov * float64(el) / float64(pl)
		g.SetCoverage(pe, g.Coverage(pe)+delta)
	}
	r.Remove(e)
}
