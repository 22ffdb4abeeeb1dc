package dbg

import "testing"

func seqOfLen(n int) []byte {
	s := make([]byte, n)
	pattern := []byte("ACGT")
	for i := range s {
		s[i] = pattern[i%4]
	}
	return s
}

func TestAddEdgeAcceptsMinimalSequence(t *testing.T) {
	g := NewGraph(21, false)
	a, b := g.AddVertex(), g.AddVertex()
	e := g.AddEdge(a, b, seqOfLen(22), 1) // K+1, the minimum accepted length
	if g.Length(e) != 1 {
		t.Fatalf("expected length 1 for a K+1-base sequence, got %d", g.Length(e))
	}
}

func TestAddEdgePairCreatesConjugates(t *testing.T) {
	g := NewGraph(21, true)
	a, b := g.AddVertexPair()
	c, d := g.AddVertexPair()
	e, ec := g.AddEdgePair(a, c, seqOfLen(30), 5)
	if e == ec {
		t.Fatalf("non-palindromic sequence should yield distinct conjugate edges")
	}
	if g.EdgeConjugate(e) != ec || g.EdgeConjugate(ec) != e {
		t.Fatalf("conjugate involution broken")
	}
	if g.EdgeStart(ec) != g.Conjugate(c) || g.EdgeEnd(ec) != g.Conjugate(a) {
		t.Fatalf("conjugate edge endpoints should be the conjugates of end/start")
	}
	_ = b
	_ = d
	g.CheckInvariants()
}

func TestAddEdgePairPalindrome(t *testing.T) {
	g := NewGraph(3, true) // "ACGT" is K+1 bases, the minimum AddEdge accepts
	v := g.AddVertex()
	g.SetSelfConjugate(v)
	seq := []byte("ACGT")
	rc := ReverseComplement(seq)
	if !BytesEqual(rc, seq) {
		t.Fatalf("test fixture sequence must be its own reverse complement")
	}
	e, ec := g.AddEdgePair(v, v, seq, 1)
	if e != ec {
		t.Fatalf("palindromic edge must be its own conjugate")
	}
	if !g.IsPalindromic(e) {
		t.Fatalf("IsPalindromic should report true")
	}
}

func TestDeleteEdgeUpdatesAdjacency(t *testing.T) {
	g := NewGraph(3, false)
	a, b := g.AddVertex(), g.AddVertex()
	e := g.AddEdge(a, b, seqOfLen(6), 2)
	if g.OutDegree(a) != 1 || g.InDegree(b) != 1 {
		t.Fatalf("expected edge recorded in adjacency sets")
	}
	g.DeleteEdge(e)
	if g.OutDegree(a) != 0 || g.InDegree(b) != 0 {
		t.Fatalf("expected edge removed from adjacency sets")
	}
	if g.IsValidEdge(e) {
		t.Fatalf("deleted edge handle should be invalid")
	}
}

func TestDeleteVertexSucceedsWithoutIncidentEdges(t *testing.T) {
	g := NewGraph(3, false)
	a, b := g.AddVertex(), g.AddVertex()
	e := g.AddEdge(a, b, seqOfLen(6), 1)
	g.DeleteEdge(e)
	g.DeleteVertex(a)
	g.DeleteVertex(b)
	if g.IsValidVertex(a) || g.IsValidVertex(b) {
		t.Fatalf("expected both vertices invalid after deletion")
	}
}

func TestHandleReuseAfterDelete(t *testing.T) {
	g := NewGraph(3, false)
	a, b := g.AddVertex(), g.AddVertex()
	e1 := g.AddEdge(a, b, seqOfLen(6), 1)
	g.DeleteEdge(e1)
	c, d := g.AddVertex(), g.AddVertex()
	e2 := g.AddEdge(c, d, seqOfLen(6), 1)
	if e2 != e1 {
		t.Fatalf("expected freed edge handle %v to be reused, got %v", e1, e2)
	}
}

func TestAllVerticesAllEdgesStableOrder(t *testing.T) {
	g := NewGraph(3, false)
	var verts []VertexID
	for i := 0; i < 5; i++ {
		verts = append(verts, g.AddVertex())
	}
	got := g.AllVertices()
	if len(got) != len(verts) {
		t.Fatalf("expected %d vertices, got %d", len(verts), len(got))
	}
	for i := range verts {
		if got[i] != verts[i] {
			t.Fatalf("expected arena order to match insertion order at %d: want %v got %v", i, verts[i], got[i])
		}
	}
}

func TestCheckInvariantsAcceptsWellFormedConjugateGraph(t *testing.T) {
	g := NewGraph(3, true)
	a, b := g.AddVertexPair()
	c, d := g.AddVertexPair()
	g.AddEdgePair(a, c, seqOfLen(10), 1)
	_, _ = b, d
	g.CheckInvariants() // should not fatal on a well-formed graph
}
