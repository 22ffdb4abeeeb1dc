package dbg

// Compressible reports whether v has exactly one incoming and one
// outgoing edge, neither of which is a self-loop, and the two edges do
// not already share both endpoints (spec section 3's "no compressible
// vertex" invariant and section 4.1's compress() no-op conditions).
func (g *Graph) Compressible(v VertexID) bool {
	vv := g.v(v)
	if len(vv.in) != 1 || len(vv.out) != 1 {
		return false
	}
	a, b := vv.in[0], vv.out[0]
	ea, eb := g.e(a), g.e(b)
	if ea.start == ea.end || eb.start == eb.end {
		return false // incident self-loop
	}
	if a == b {
		return false // single self-loop edge presenting as both in and out
	}
	if g.hasConjugate && g.IsPalindromic(a) && v == g.Conjugate(v) {
		return false // self-conjugate vertex with a self-loop-like pairing
	}
	// merging a and b must not create a self-loop: a's start must differ
	// from b's end (unless that is itself the intended single-edge cycle,
	// which compress() must not silently create).
	if ea.start == eb.end {
		return false
	}
	if g.hasConjugate && g.Conjugate(v) != v {
		// Compress also merges Conjugate(v)'s mirrored pair (conjugate(b),
		// conjugate(a)) in the same step; refuse if that pair overlaps a/b
		// itself, which would mean the two merges fight over the same edge.
		ac, bc := g.EdgeConjugate(a), g.EdgeConjugate(b)
		if ac == a || ac == b || bc == a || bc == b {
			return false
		}
	}
	return true
}

// Compress merges v's sole incoming edge a and sole outgoing edge b into a
// single edge a+b with overlap-merged sequence and length-weighted
// coverage, then deletes a, b and v. On a conjugate graph, Conjugate(v)'s
// mirrored pair is merged in the same step and the two resulting edges are
// paired as conjugates, keeping spec section 8's conjugate-involution
// properties intact across compression. It is a no-op when v is no longer
// a valid vertex (already consumed while compressing its own conjugate) or
// is not Compressible. Returns the new edge id on v's side, or NilEdge if
// no compression happened.
func (g *Graph) Compress(v VertexID) EdgeID {
	if !g.IsValidVertex(v) || !g.Compressible(v) {
		return NilEdge
	}
	vv := g.v(v)
	aID, bID := vv.in[0], vv.out[0]

	if !g.hasConjugate {
		return g.compressOne(aID, bID)
	}

	vc := g.Conjugate(v)
	if vc == v {
		// Forced by the conjugate bijection: a self-conjugate vertex's sole
		// in/out edges are each other's conjugates, so the merge is its own
		// mirror image and comes out palindromic.
		e := g.compressOne(aID, bID)
		g.e(e).conjugate = e
		return e
	}

	// conjugate(x->v) = Conjugate(v)->Conjugate(x), landing outgoing from
	// vc; conjugate(v->y) = Conjugate(y)->Conjugate(v), landing incoming to
	// vc. So vc's sole in/out pair is (conjugate(b), conjugate(a)).
	acID, bcID := g.EdgeConjugate(aID), g.EdgeConjugate(bID)

	e := g.compressOne(aID, bID)
	ec := g.compressOne(bcID, acID)
	g.e(e).conjugate = ec
	g.e(ec).conjugate = e
	return e
}

// compressOne merges incoming edge a and outgoing edge b of their shared
// vertex into one new edge, deleting a, b and that vertex. It never links
// conjugates; Compress re-links afterward.
func (g *Graph) compressOne(aID, bID EdgeID) EdgeID {
	a, b := g.e(aID), g.e(bID)
	la, lb := a.length(g.K), b.length(g.K)
	mergedSeq := OverlapMerge(a.seq, b.seq, g.K)
	mergedCov := weightedCoverage(a.coverage, la, b.coverage, lb)
	start, end, v := a.start, b.end, a.end

	g.DeleteEdge(aID)
	g.DeleteEdge(bID)
	g.DeleteVertex(v)

	return g.AddEdge(start, end, mergedSeq, mergedCov)
}

// weightedCoverage implements spec section 3's coverage-conservation
// invariant: cov(c) = (cov(a)*la + cov(b)*lb) / (la+lb).
func weightedCoverage(covA float64, la int, covB float64, lb int) float64 {
	total := la + lb
	if total == 0 {
		return 0
	}
	return (covA*float64(la) + covB*float64(lb)) / float64(total)
}

// CompressAll repeatedly compresses every compressible vertex until a
// fixed point, enforcing the "no compressible vertex after simplification
// returns" invariant of spec section 3. Compress itself handles a
// conjugate graph's mirrored pair, so this loop needs no special-casing
// beyond skipping vertices a prior Compress call already consumed.
func (g *Graph) CompressAll() {
	changed := true
	for changed {
		changed = false
		for _, v := range g.AllVertices() {
			if !g.IsValidVertex(v) {
				continue
			}
			if g.Compress(v) != NilEdge {
				changed = true
			}
		}
	}
}
