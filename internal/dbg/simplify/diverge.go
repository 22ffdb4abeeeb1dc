package simplify

import "log"

// logDivergence logs the non-fatal "convergence divergence" warning of
// spec section 7: a fixed-point loop exceeded its hard iteration cap. The
// pass returns with its current state rather than aborting.
func logDivergence(component string, cap int) {
	log.Printf("[%s] fixed-point loop exceeded hard cap of %d iterations, returning current state", component, cap)
}
