// Package remove implements the safe edge-deletion primitive shared by
// every simplification pass: delete an edge and its conjugate, then
// locally compress the newly degree-reduced endpoints (two, or four on a
// conjugate graph with a non-palindromic edge). Grounded on
// the delete+SubstituteEdgeID+compress sequence in constructdbg.go's
// SmfyDBG, generalized into a single reusable primitive instead of being
// inlined at each call site.
package remove

import "github.com/mudesheng/gasimplify/internal/dbg"

// SafetyCheck is an optional guard consulted before a removal actually
// happens: if it returns false, the removal is refused. Spec section 4.4
// notes this defaults to disabled in the simplification core; it exists
// for callers (e.g. a paired-info-guided mode) that must preserve
// connectivity.
type SafetyCheck func(g *dbg.Graph, e dbg.EdgeID) bool

// Remover deletes edges and compresses their exposed endpoints.
type Remover struct {
	g       *dbg.Graph
	check   SafetyCheck
	removed int
}

// New creates a Remover with no safety check (the simplification core's
// default, per spec section 4.4).
func New(g *dbg.Graph) *Remover {
	return &Remover{g: g}
}

// WithSafetyCheck enables the optional disconnection guard.
func (r *Remover) WithSafetyCheck(check SafetyCheck) *Remover {
	r.check = check
	return r
}

// Removed returns how many edges this Remover has deleted so far.
func (r *Remover) Removed() int { return r.removed }

// Remove deletes e and its conjugate (a no-op duplicate delete for a
// palindromic edge, since EdgeConjugate(e)==e there), firing the graph's
// registered pre-removal callbacks exactly once per distinct edge, then
// attempts Compress on every vertex newly exposed as degree-(1,1).
// Returns false without mutating the graph if the safety check refuses.
func (r *Remover) Remove(e dbg.EdgeID) bool {
	if !r.g.IsValidEdge(e) {
		return false
	}
	if r.check != nil && !r.check(r.g, e) {
		return false
	}

	ce := r.g.EdgeConjugate(e)
	start, end := r.g.EdgeStart(e), r.g.EdgeEnd(e)
	var cstart, cend dbg.VertexID
	palindrome := ce == e
	if !palindrome {
		cstart, cend = r.g.EdgeStart(ce), r.g.EdgeEnd(ce)
	}

	r.g.FireRemoveHandler(e)
	r.g.DeleteEdge(e)
	r.removed++
	if !palindrome {
		r.g.FireRemoveHandler(ce)
		r.g.DeleteEdge(ce)
		r.removed++
	}

	r.g.Compress(start)
	r.g.Compress(end)
	if !palindrome {
		r.g.Compress(cstart)
		r.g.Compress(cend)
	}
	return true
}
