package simplify

import (
	"sort"

	"github.com/mudesheng/gasimplify/internal/dbg"
	"gonum.org/v1/gonum/stat"
)

// EstimateMaxCoverage computes a histogram-percentile-based coverage
// threshold from the graph's current edge coverages, per spec section
// 4.8, step 1 ("if estimate_max_coverage is set"). The percentile itself
// replaces a hand-rolled accumulation loop with gonum/stat's Quantile,
// which the teacher's own codebase never had a library for.
func EstimateMaxCoverage(g *dbg.Graph, percentile float64) float64 {
	edges := g.AllEdges()
	if len(edges) == 0 {
		return 0
	}
	covs := make([]float64, len(edges))
	for i, e := range edges {
		covs[i] = g.Coverage(e)
	}
	sort.Float64s(covs)
	return stat.Quantile(percentile, stat.Empirical, covs, nil)
}

// AverageCoverage reports the length-weighted mean edge coverage, the
// value the driver writes back to ReadDataset.AvgCoverage per spec
// section 4.8, step 5.
func AverageCoverage(g *dbg.Graph) float64 {
	var totalCov, totalLen float64
	for _, e := range g.AllEdges() {
		l := float64(g.Length(e))
		totalCov += g.Coverage(e) * l
		totalLen += l
	}
	if totalLen == 0 {
		return 0
	}
	return totalCov / totalLen
}
