package dbg

import "log"

// Graph is a mutable de Bruijn graph: arena-backed vertices and edges with
// optional conjugate pairing. Vertex and edge handles are stable small
// integers into slices with free lists, per the "arena-style storage"
// design note in spec section 9 — this sidesteps the 2-cycle ownership
// that conjugate edge pairs would otherwise create with pointers.
type Graph struct {
	K int // k-mer length; every edge sequence has length >= K+1

	vertices []vertex
	edges    []edge

	freeVertices []VertexID
	freeEdges    []EdgeID

	hasConjugate bool

	observers      []Observer
	removeHandlers []DeleteCallback
}

// NewGraph creates an empty graph. When conjugate is true, callers create
// conjugate partners with AddVertexPair/AddEdgePair below (AddVertex and
// AddEdge alone create no partner); when false, Conjugate is the
// identity function, matching the "capability set" resolution of spec
// section 9 (a single graph type, not two type-parametric ones).
func NewGraph(k int, conjugate bool) *Graph {
	g := &Graph{K: k, hasConjugate: conjugate}
	// index 0 is the nil sentinel for both arenas
	g.vertices = append(g.vertices, vertex{id: NilVertex, free: true})
	g.edges = append(g.edges, edge{id: NilEdge, free: true})
	return g
}

// HasConjugate reports whether this graph maintains conjugate pairing.
func (g *Graph) HasConjugate() bool { return g.hasConjugate }

func (g *Graph) allocVertex() VertexID {
	if n := len(g.freeVertices); n > 0 {
		id := g.freeVertices[n-1]
		g.freeVertices = g.freeVertices[:n-1]
		g.vertices[id] = vertex{id: id}
		return id
	}
	id := VertexID(len(g.vertices))
	g.vertices = append(g.vertices, vertex{id: id})
	return id
}

func (g *Graph) allocEdge() EdgeID {
	if n := len(g.freeEdges); n > 0 {
		id := g.freeEdges[n-1]
		g.freeEdges = g.freeEdges[:n-1]
		g.edges[id] = edge{id: id}
		return id
	}
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, edge{id: id})
	return id
}

func (g *Graph) v(id VertexID) *vertex {
	if id == NilVertex || int(id) >= len(g.vertices) || g.vertices[id].free {
		log.Fatalf("[Graph] invalid vertex handle %v", id)
	}
	return &g.vertices[id]
}

func (g *Graph) e(id EdgeID) *edge {
	if id == NilEdge || int(id) >= len(g.edges) || g.edges[id].free {
		log.Fatalf("[Graph] invalid edge handle %v", id)
	}
	return &g.edges[id]
}

// AddVertex creates a new, conjugate-less vertex (for a non-conjugate
// graph, or for the rare self-conjugate vertex which the caller then
// marks with SetSelfConjugate).
func (g *Graph) AddVertex() VertexID {
	id := g.allocVertex()
	g.vertices[id].conjugate = NilVertex
	return id
}

// AddVertexPair creates two mutually-conjugate vertices and returns both.
func (g *Graph) AddVertexPair() (VertexID, VertexID) {
	a := g.allocVertex()
	b := g.allocVertex()
	g.vertices[a].conjugate = b
	g.vertices[b].conjugate = a
	return a, b
}

// SetSelfConjugate marks v as its own conjugate (v == conjugate(v)).
func (g *Graph) SetSelfConjugate(v VertexID) {
	g.v(v).conjugate = v
}

// Conjugate returns the conjugate vertex of v, or v itself if the graph
// has no conjugate relation or v is self-conjugate.
func (g *Graph) Conjugate(v VertexID) VertexID {
	vv := g.v(v)
	if vv.conjugate == NilVertex {
		return v
	}
	return vv.conjugate
}

// EdgeConjugate returns the conjugate edge of e, or e itself when the
// graph has no conjugate relation.
func (g *Graph) EdgeConjugate(e EdgeID) EdgeID {
	ee := g.e(e)
	if ee.conjugate == NilEdge {
		return e
	}
	return ee.conjugate
}

// IsPalindromic reports whether e equals its own conjugate.
func (g *Graph) IsPalindromic(e EdgeID) bool {
	return g.EdgeConjugate(e) == e
}

// AddEdge requires sequence length >= K+1 (a precondition violation is
// fatal, per spec section 7) and appends e to start's outgoing set and
// end's incoming set. It does not create a conjugate; use AddEdgePair for
// conjugate graphs.
func (g *Graph) AddEdge(start, end VertexID, sequence []byte, coverage float64) EdgeID {
	if len(sequence) < g.K+1 {
		log.Fatalf("[Graph.AddEdge] sequence length %d < K+1 (%d)", len(sequence), g.K+1)
	}
	id := g.allocEdge()
	ee := &g.edges[id]
	ee.start, ee.end = start, end
	ee.seq = sequence
	ee.coverage = coverage
	ee.conjugate = NilEdge
	g.v(start).out = append(g.v(start).out, id)
	g.v(end).in = append(g.v(end).in, id)
	g.notifyAdded(id)
	return id
}

// AddEdgePair atomically creates edge e (start->end, sequence) and its
// conjugate ē (conjugate(end)->conjugate(start), reverse-complement of
// sequence), per spec section 4.1: "add_edge produces both e and ē
// atomically". For a palindromic sequence (equal to its own reverse
// complement between the same conjugate endpoints) a single logical edge
// is created and it is its own conjugate.
func (g *Graph) AddEdgePair(start, end VertexID, sequence []byte, coverage float64) (EdgeID, EdgeID) {
	e := g.AddEdge(start, end, sequence, coverage)
	if !g.hasConjugate {
		return e, e
	}
	cs, ce := g.Conjugate(end), g.Conjugate(start)
	rc := ReverseComplement(sequence)
	if cs == start && ce == end && BytesEqual(rc, sequence) {
		g.e(e).conjugate = e
		return e, e
	}
	ec := g.AddEdge(cs, ce, rc, coverage)
	g.e(e).conjugate = ec
	g.e(ec).conjugate = e
	return e, ec
}

// DeleteEdge removes e from its endpoints' adjacency sets and frees its
// handle. It does not touch e's conjugate; callers wanting the atomic
// pairwise deletion described in spec section 4.1 should use
// internal/dbg/remove.Remover, which calls this for both e and ē.
func (g *Graph) DeleteEdge(e EdgeID) {
	ee := g.e(e)
	g.notifyDeleted(e)
	g.v(ee.start).removeOut(e)
	g.v(ee.end).removeIn(e)
	*ee = edge{id: e, free: true}
	g.freeEdges = append(g.freeEdges, e)
}

// DeleteVertex removes v. Precondition: v has no incident edges (fatal
// violation otherwise, per spec section 7).
func (g *Graph) DeleteVertex(v VertexID) {
	vv := g.v(v)
	if len(vv.in) != 0 || len(vv.out) != 0 {
		log.Fatalf("[Graph.DeleteVertex] vertex %v has incident edges", v)
	}
	*vv = vertex{id: v, free: true}
	g.freeVertices = append(g.freeVertices, v)
}

// ForceDeleteVertex deletes v's incident edges first (each independently,
// not through the paired remover — callers needing conjugate-safe
// deletion should use remove.Remover on each edge instead), then v.
func (g *Graph) ForceDeleteVertex(v VertexID) {
	vv := g.v(v)
	for _, e := range append([]EdgeID(nil), vv.in...) {
		g.DeleteEdge(e)
	}
	for _, e := range append([]EdgeID(nil), vv.out...) {
		g.DeleteEdge(e)
	}
	g.DeleteVertex(v)
}

// --- accessors ---

func (g *Graph) EdgeStart(e EdgeID) VertexID   { return g.e(e).start }
func (g *Graph) EdgeEnd(e EdgeID) VertexID     { return g.e(e).end }
func (g *Graph) Sequence(e EdgeID) []byte      { return g.e(e).seq }
func (g *Graph) Length(e EdgeID) int           { return g.e(e).length(g.K) }
func (g *Graph) Coverage(e EdgeID) float64     { return g.e(e).coverage }
func (g *Graph) SetCoverage(e EdgeID, c float64) { g.e(e).coverage = c }

func (g *Graph) OutgoingEdges(v VertexID) []EdgeID { return append([]EdgeID(nil), g.v(v).out...) }
func (g *Graph) IncomingEdges(v VertexID) []EdgeID { return append([]EdgeID(nil), g.v(v).in...) }
func (g *Graph) OutDegree(v VertexID) int          { return len(g.v(v).out) }
func (g *Graph) InDegree(v VertexID) int           { return len(g.v(v).in) }

// IsValidVertex/IsValidEdge let iterators and tests probe liveness without
// triggering the fatal precondition path of v()/e().
func (g *Graph) IsValidVertex(v VertexID) bool {
	return v != NilVertex && int(v) < len(g.vertices) && !g.vertices[v].free
}
func (g *Graph) IsValidEdge(e EdgeID) bool {
	return e != NilEdge && int(e) < len(g.edges) && !g.edges[e].free
}

// AllVertices/AllEdges return every live handle, in arena order (which is
// also stable-id order — see SPEC_FULL.md section 4.1.1).
func (g *Graph) AllVertices() []VertexID {
	out := make([]VertexID, 0, len(g.vertices))
	for i := 1; i < len(g.vertices); i++ {
		if !g.vertices[i].free {
			out = append(out, VertexID(i))
		}
	}
	return out
}

func (g *Graph) AllEdges() []EdgeID {
	out := make([]EdgeID, 0, len(g.edges))
	for i := 1; i < len(g.edges); i++ {
		if !g.edges[i].free {
			out = append(out, EdgeID(i))
		}
	}
	return out
}

// CheckInvariants validates the invariants of spec section 3 and aborts
// with a diagnostic on drift, per the "invariant drift" error taxonomy
// entry in spec section 7.
func (g *Graph) CheckInvariants() {
	for _, vid := range g.AllVertices() {
		v := g.v(vid)
		for _, e := range v.in {
			if g.e(e).end != vid {
				log.Fatalf("[Graph.CheckInvariants] edge %v in incoming set of %v but end=%v", e, vid, g.e(e).end)
			}
		}
		for _, e := range v.out {
			if g.e(e).start != vid {
				log.Fatalf("[Graph.CheckInvariants] edge %v in outgoing set of %v but start=%v", e, vid, g.e(e).start)
			}
		}
	}
	if !g.hasConjugate {
		return
	}
	for _, eid := range g.AllEdges() {
		e := g.e(eid)
		if e.conjugate == NilEdge {
			log.Fatalf("[Graph.CheckInvariants] edge %v has no conjugate", eid)
		}
		ce := g.e(e.conjugate)
		if ce.conjugate != eid {
			log.Fatalf("[Graph.CheckInvariants] conjugate involution broken for %v", eid)
		}
		if ce.start != g.Conjugate(e.end) || ce.end != g.Conjugate(e.start) {
			log.Fatalf("[Graph.CheckInvariants] conjugate endpoints broken for %v", eid)
		}
	}
}
