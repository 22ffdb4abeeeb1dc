package dbg

import "testing"

func seqN(prefix byte, n int) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = prefix
	}
	return s
}

// overlapSeqPair builds two sequences that share a k-base overlap: a's
// last k bases equal b's first k bases.
func overlapSeqPair(k int) ([]byte, []byte) {
	a := append(seqN('C', 5), seqN('A', k)...)
	b := append(seqN('A', k), seqN('G', 5)...)
	return a, b
}

func TestCompressibleRequiresDegreeOneOne(t *testing.T) {
	g := NewGraph(3, false)
	a, v, b := g.AddVertex(), g.AddVertex(), g.AddVertex()
	sa, sb := overlapSeqPair(3)
	g.AddEdge(a, v, sa, 2)
	g.AddEdge(v, b, sb, 4)
	if !g.Compressible(v) {
		t.Fatalf("expected degree-(1,1) vertex to be compressible")
	}

	c := g.AddVertex()
	g.AddEdge(v, c, sb, 1) // now v has out-degree 2
	if g.Compressible(v) {
		t.Fatalf("expected vertex with out-degree 2 to not be compressible")
	}
}

func TestCompressMergesSequenceAndCoverage(t *testing.T) {
	g := NewGraph(3, false)
	a, v, b := g.AddVertex(), g.AddVertex(), g.AddVertex()
	sa, sb := overlapSeqPair(3)
	ea := g.AddEdge(a, v, sa, 2) // length 5
	eb := g.AddEdge(v, b, sb, 4) // length 5

	laWant := g.Length(ea)
	lbWant := g.Length(eb)

	merged := g.Compress(v)
	if merged == NilEdge {
		t.Fatalf("expected compression to succeed")
	}
	if g.IsValidVertex(v) {
		t.Fatalf("expected compressed vertex to be deleted")
	}
	// The merged edge may reuse a freed source handle (the edge arena keeps
	// a free list), so only handles other than merged must be invalid, and
	// merged must be the sole remaining edge.
	for _, e := range []EdgeID{ea, eb} {
		if e != merged && g.IsValidEdge(e) {
			t.Fatalf("expected both source edges deleted after compression")
		}
	}
	if len(g.AllEdges()) != 1 {
		t.Fatalf("expected both source edges deleted after compression, got %d edges", len(g.AllEdges()))
	}
	if g.EdgeStart(merged) != a || g.EdgeEnd(merged) != b {
		t.Fatalf("expected merged edge to span a->b")
	}

	wantSeq := OverlapMerge(sa, sb, 3)
	if !BytesEqual(g.Sequence(merged), wantSeq) {
		t.Fatalf("merged sequence mismatch: want %s got %s", wantSeq, g.Sequence(merged))
	}

	wantCov := weightedCoverage(2, laWant, 4, lbWant)
	if g.Coverage(merged) != wantCov {
		t.Fatalf("expected length-weighted coverage %v, got %v", wantCov, g.Coverage(merged))
	}
}

func TestCompressRejectsSelfLoopFormation(t *testing.T) {
	g := NewGraph(3, false)
	a, v := g.AddVertex(), g.AddVertex()
	sa, sb := overlapSeqPair(3)
	g.AddEdge(a, v, sa, 1)
	g.AddEdge(v, a, sb, 1) // merging would create an a->a self-loop
	if g.Compressible(v) {
		t.Fatalf("expected vertex whose merge would form a self-loop to be rejected")
	}
	if g.Compress(v) != NilEdge {
		t.Fatalf("expected Compress to be a no-op")
	}
}

// TestCompressPairsConjugatesOnConjugateGraph builds a->v->b on a
// conjugate graph (k=3) via AddEdgePair, so Conjugate(v) is also
// compressible through the mirrored edge pair. Compressing v must also
// compress Conjugate(v) and pair the two resulting edges as conjugates,
// per spec section 8's involution properties.
func TestCompressPairsConjugatesOnConjugateGraph(t *testing.T) {
	g := NewGraph(3, true)
	a, ac := g.AddVertexPair()
	v, vc := g.AddVertexPair()
	b, bc := g.AddVertexPair()
	sa, sv := overlapSeqPair(3)
	e1, ec1 := g.AddEdgePair(a, v, sa, 2)
	e2, ec2 := g.AddEdgePair(v, b, sv, 4)

	if g.EdgeStart(ec1) != vc || g.EdgeEnd(ec1) != ac {
		t.Fatalf("expected conjugate of a->v to be vc->ac")
	}
	if g.EdgeStart(ec2) != bc || g.EdgeEnd(ec2) != vc {
		t.Fatalf("expected conjugate of v->b to be bc->vc")
	}
	if !g.Compressible(v) || !g.Compressible(vc) {
		t.Fatalf("expected both v and its conjugate to be compressible")
	}

	merged := g.Compress(v)
	if merged == NilEdge {
		t.Fatalf("expected compression to succeed")
	}
	if g.IsValidVertex(v) || g.IsValidVertex(vc) {
		t.Fatalf("expected both v and Conjugate(v) deleted by a single Compress call")
	}
	// The two merged edges may reuse freed source handles (the edge arena
	// keeps a free list), so only handles other than the merged pair must
	// be invalid, and the merged pair must be the only edges left.
	mergedConj := g.EdgeConjugate(merged)
	for _, e := range []EdgeID{e1, e2, ec1, ec2} {
		if e != merged && e != mergedConj && g.IsValidEdge(e) {
			t.Fatalf("expected source edge %v deleted after compression", e)
		}
	}
	if len(g.AllEdges()) != 2 {
		t.Fatalf("expected only the merged edge and its conjugate left, got %d edges", len(g.AllEdges()))
	}

	if mergedConj == merged {
		t.Fatalf("expected the merged edge to have a distinct conjugate, not be palindromic")
	}
	if g.EdgeConjugate(mergedConj) != merged {
		t.Fatalf("expected conjugate involution to hold for the merged edge pair")
	}
	if g.EdgeStart(mergedConj) != g.Conjugate(g.EdgeEnd(merged)) || g.EdgeEnd(mergedConj) != g.Conjugate(g.EdgeStart(merged)) {
		t.Fatalf("expected merged conjugate endpoints to mirror the merged edge")
	}
	g.CheckInvariants()
}

func TestCompressAllReachesFixedPointWithNoCompressibleVertex(t *testing.T) {
	g := NewGraph(3, false)
	start := g.AddVertex()
	prev := start
	const chainLen = 5
	for i := 0; i < chainLen; i++ {
		next := g.AddVertex()
		sa, _ := overlapSeqPair(3)
		g.AddEdge(prev, next, sa, 1)
		prev = next
	}
	g.CompressAll()
	for _, v := range g.AllVertices() {
		if g.Compressible(v) {
			t.Fatalf("expected no compressible vertex remaining after CompressAll, found %v", v)
		}
	}
	if len(g.AllEdges()) != 1 {
		t.Fatalf("expected the whole chain collapsed to a single edge, got %d", len(g.AllEdges()))
	}
}
