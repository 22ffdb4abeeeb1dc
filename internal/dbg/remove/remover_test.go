package remove

import (
	"testing"

	"github.com/mudesheng/gasimplify/internal/dbg"
)

func seqOfLen(n int) []byte {
	s := make([]byte, n)
	pattern := []byte("ACGT")
	for i := range s {
		s[i] = pattern[i%4]
	}
	return s
}

func TestRemoveDeletesEdgeAndCompressesExposedEndpoint(t *testing.T) {
	g := dbg.NewGraph(3, false)
	// x -> v -> y is the surviving chain; tipSrc -> v is the extra
	// incoming edge that makes v in-degree 2 until it is removed.
	x, v, y, tipSrc := g.AddVertex(), g.AddVertex(), g.AddVertex(), g.AddVertex()
	sa, sb := overlapPair(3)
	g.AddEdge(x, v, sa, 2)
	g.AddEdge(v, y, sb, 2)
	e := g.AddEdge(tipSrc, v, seqOfLen(10), 1)

	r := New(g)
	if !r.Remove(e) {
		t.Fatalf("expected removal to succeed")
	}
	if g.IsValidEdge(e) {
		t.Fatalf("expected e invalidated")
	}
	if r.Removed() != 1 {
		t.Fatalf("expected 1 edge removed, got %d", r.Removed())
	}
	// Removing e exposes v as degree-(1,1); Remove must compress it,
	// merging x->v->y into a single x->y edge.
	if len(g.AllEdges()) != 1 {
		t.Fatalf("expected x->v->y compressed to a single edge, got %d edges", len(g.AllEdges()))
	}
	if g.IsValidVertex(v) {
		t.Fatalf("expected v removed by compression")
	}
}

func overlapPair(k int) ([]byte, []byte) {
	a := append([]byte("CCCCC"), seqRepeat('A', k)...)
	b := append(seqRepeat('A', k), []byte("GGGGG")...)
	return a, b
}

func seqRepeat(c byte, n int) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = c
	}
	return s
}

// TestRemoveCompressesConjugatePairOnConjugateGraph mirrors
// TestRemoveDeletesEdgeAndCompressesExposedEndpoint on a conjugate graph:
// removing the tip edge exposes both v and Conjugate(v) as compressible,
// and Remove must leave the graph's conjugate invariants intact.
func TestRemoveCompressesConjugatePairOnConjugateGraph(t *testing.T) {
	g := dbg.NewGraph(3, true)
	x, xc := g.AddVertexPair()
	v, vc := g.AddVertexPair()
	y, yc := g.AddVertexPair()
	tipSrc, tipSrcc := g.AddVertexPair()

	sa, sb := overlapPair(3)
	g.AddEdgePair(x, v, sa, 2)
	g.AddEdgePair(v, y, sb, 2)
	tip, _ := g.AddEdgePair(tipSrc, v, seqOfLen(10), 1)

	r := New(g)
	if !r.Remove(tip) {
		t.Fatalf("expected removal to succeed")
	}
	if r.Removed() != 2 {
		t.Fatalf("expected the tip and its conjugate counted, got %d", r.Removed())
	}
	if g.IsValidVertex(v) || g.IsValidVertex(vc) {
		t.Fatalf("expected both v and Conjugate(v) compressed away")
	}
	if len(g.AllEdges()) != 2 {
		t.Fatalf("expected the two merged strands (x->y and its conjugate), got %d edges", len(g.AllEdges()))
	}
	_, _, _ = xc, yc, tipSrcc
	g.CheckInvariants()
}

func TestRemoveRefusedBySafetyCheck(t *testing.T) {
	g := dbg.NewGraph(3, false)
	a, b := g.AddVertex(), g.AddVertex()
	e := g.AddEdge(a, b, seqOfLen(10), 1)

	r := New(g).WithSafetyCheck(func(g *dbg.Graph, e dbg.EdgeID) bool { return false })
	if r.Remove(e) {
		t.Fatalf("expected removal refused by safety check")
	}
	if !g.IsValidEdge(e) {
		t.Fatalf("expected e untouched when safety check refuses")
	}
	if r.Removed() != 0 {
		t.Fatalf("expected removed count 0, got %d", r.Removed())
	}
}

func TestRemovePalindromeIsIdempotentSingleDelete(t *testing.T) {
	g := dbg.NewGraph(3, true) // "ACGT" is K+1 bases, the minimum AddEdge accepts
	v := g.AddVertex()
	g.SetSelfConjugate(v)
	seq := []byte("ACGT")
	e, _ := g.AddEdgePair(v, v, seq, 1)

	r := New(g)
	if !r.Remove(e) {
		t.Fatalf("expected removal to succeed")
	}
	if r.Removed() != 1 {
		t.Fatalf("expected a palindromic edge counted once, got %d", r.Removed())
	}
	if g.IsValidEdge(e) {
		t.Fatalf("expected e invalidated")
	}
}

func TestRemoveFiresCallbackBeforeInvalidation(t *testing.T) {
	g := dbg.NewGraph(3, false)
	a, b := g.AddVertex(), g.AddVertex()
	e := g.AddEdge(a, b, seqOfLen(10), 1)

	var sawValid bool
	g.OnRemove(func(g *dbg.Graph, e dbg.EdgeID) {
		sawValid = g.IsValidEdge(e)
	})

	New(g).Remove(e)
	if !sawValid {
		t.Fatalf("expected callback to observe the edge still valid before deletion")
	}
}
