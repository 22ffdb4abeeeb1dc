package simplify

import (
	"github.com/mudesheng/gasimplify/internal/dbg"
	"github.com/mudesheng/gasimplify/internal/dbg/remove"
)

// maxFlow is strategy (F): each weakly-connected component is treated as
// a flow network with capacities derived from coverage and uniqueness;
// edges carrying no flow in the min-cut solution between two identified
// unique edges are removed, per spec section 4.7, strategy F, grounded
// on MaxFlowECRemover's intent (MaxFlowRemoveErroneousEdges in
// graph_simplification.hpp). Capacities are coverage scaled to
// hundredths-of-a-read, matching the teacher's own integer-coverage
// style (DBGEdge.CovD is a scaled uint16 in constructdbg.go).
type maxFlow struct {
	L                int
	uniquenessLength int
}

// capacityScale converts a float coverage into an integer max-flow
// capacity.
const capacityScale = 100

func edgeCapacity(g *dbg.Graph, e dbg.EdgeID) int64 {
	c := int64(g.Coverage(e) * capacityScale)
	if c < 1 {
		c = 1
	}
	return c
}

func (s maxFlow) Run(g *dbg.Graph) bool {
	r := remove.New(g)
	for _, comp := range weaklyConnectedComponents(g) {
		src, dst, ok := pickUniquePair(g, comp, s.uniquenessLength)
		if !ok {
			continue
		}
		flowOn := edgeMaxFlow(g, comp, src, dst)
		for _, e := range comp {
			if !g.IsValidEdge(e) || e == src || e == dst {
				continue
			}
			if g.Length(e) > s.L {
				continue
			}
			if flowOn[e] == 0 {
				r.Remove(e)
			}
		}
	}
	return r.Removed() > 0
}

// weaklyConnectedComponents partitions all live edges by weak
// connectivity (treating the underlying graph as undirected).
func weaklyConnectedComponents(g *dbg.Graph) [][]dbg.EdgeID {
	visited := make(map[dbg.EdgeID]bool)
	var comps [][]dbg.EdgeID
	for _, e := range g.AllEdges() {
		if visited[e] {
			continue
		}
		var comp []dbg.EdgeID
		queue := []dbg.EdgeID{e}
		visited[e] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, nb := range incidentEdges(g, cur) {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

func incidentEdges(g *dbg.Graph, e dbg.EdgeID) []dbg.EdgeID {
	start, end := g.EdgeStart(e), g.EdgeEnd(e)
	var out []dbg.EdgeID
	for _, v := range []dbg.VertexID{start, end} {
		out = append(out, g.OutgoingEdges(v)...)
		out = append(out, g.IncomingEdges(v)...)
	}
	filtered := out[:0]
	for _, o := range out {
		if o != e {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// pickUniquePair picks the two highest-coverage uniqueness-length edges
// in comp to serve as the flow network's source and sink.
func pickUniquePair(g *dbg.Graph, comp []dbg.EdgeID, uniquenessLength int) (dbg.EdgeID, dbg.EdgeID, bool) {
	var a, b dbg.EdgeID
	var acov, bcov float64
	for _, e := range comp {
		if !isUniqueEdge(g, e, uniquenessLength) {
			continue
		}
		c := g.Coverage(e)
		if c > acov {
			b, bcov = a, acov
			a, acov = e, c
		} else if c > bcov {
			b, bcov = e, c
		}
	}
	if a == dbg.NilEdge || b == dbg.NilEdge || a == b {
		return dbg.NilEdge, dbg.NilEdge, false
	}
	return a, b, true
}

// edgeMaxFlow runs Edmonds-Karp over the line-graph of comp (nodes are
// edges, arcs connect edges sharing a vertex in the direction of travel)
// from src to dst, returning the flow carried by each edge.
func edgeMaxFlow(g *dbg.Graph, comp []dbg.EdgeID, src, dst dbg.EdgeID) map[dbg.EdgeID]int64 {
	cap := make(map[dbg.EdgeID]int64, len(comp))
	for _, e := range comp {
		cap[e] = edgeCapacity(g, e)
	}
	flow := make(map[dbg.EdgeID]int64, len(comp))
	adjacency := buildLineGraph(g, comp)

	for {
		parent, ok := bfsAugmentingPath(adjacency, cap, flow, src, dst)
		if !ok {
			break
		}
		bottleneck := cap[dst] // capacity of dst itself bounds any path through it
		cur := dst
		for cur != src {
			p := parent[cur]
			avail := cap[cur] - flow[cur]
			if avail < bottleneck {
				bottleneck = avail
			}
			cur = p
		}
		cur = dst
		for cur != src {
			flow[cur] += bottleneck
			cur = parent[cur]
		}
	}
	return flow
}

func buildLineGraph(g *dbg.Graph, comp []dbg.EdgeID) map[dbg.EdgeID][]dbg.EdgeID {
	adjacency := make(map[dbg.EdgeID][]dbg.EdgeID, len(comp))
	set := make(map[dbg.EdgeID]bool, len(comp))
	for _, e := range comp {
		set[e] = true
	}
	for _, e := range comp {
		for _, nb := range g.OutgoingEdges(g.EdgeEnd(e)) {
			if set[nb] {
				adjacency[e] = append(adjacency[e], nb)
			}
		}
	}
	return adjacency
}

func bfsAugmentingPath(adjacency map[dbg.EdgeID][]dbg.EdgeID, cap, flow map[dbg.EdgeID]int64, src, dst dbg.EdgeID) (map[dbg.EdgeID]dbg.EdgeID, bool) {
	parent := map[dbg.EdgeID]dbg.EdgeID{src: src}
	queue := []dbg.EdgeID{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == dst {
			return parent, true
		}
		for _, nb := range adjacency[cur] {
			if _, seen := parent[nb]; seen {
				continue
			}
			if flow[nb] >= cap[nb] {
				continue
			}
			parent[nb] = cur
			queue = append(queue, nb)
		}
	}
	return nil, false
}
