// Package simplify implements the tip clipper, bulge remover, erroneous-
// connection remover and the simplification driver of spec section 4.5-
// 4.8, grounded on SmfyDBG (constructdbg.go) for the overall pass shape
// and on original_source/assembler/src/debruijn/graph_simplification.hpp
// for the escalation schedule and strategy selection.
package simplify

import "github.com/mudesheng/gasimplify/internal/dbg"

// Mode selects the erroneous-connection strategy family, per the
// simp.simpl_mode configuration option of spec section 6.
type Mode int

const (
	ModeCheating Mode = iota // strategy (B)
	ModeTopology             // strategy (C)
	ModeChimeric             // strategy (D)
	ModeMaxFlow              // strategy (F)
)

// TipClipConfig holds simp.tc.* options.
type TipClipConfig struct {
	MaxTipLengthCoefficient float64 // L_tip = min(k, RL/2) * coeff
	MaxCoverage             float64
	MaxRelativeCoverage     float64

	AdvancedChecks bool
	MaxIterations  int // I: alignment-expansion iterations for Levenshtein bound
	MaxLevenshtein int // D
	MaxECLength    int // E: alternative-path length ceiling

	MismatchMaxDiff int     // Hamming bound for MismatchTip
	ATPercentage    float64 // rho for ATContent
}

// BulgeConfig holds simp.br.* options.
type BulgeConfig struct {
	MaxBulgeLengthCoefficient float64 // L_bulge = k * coeff
	MaxCoverage               float64
	MaxRelativeCoverage       float64 // alpha
	MaxDelta                  float64 // Delta
	MaxRelativeDelta          float64 // delta
	MaxPathsExplored          int     // node-exploration cap for path search
}

// ECConfig holds simp.ec.* and simp.*ec.* options.
type ECConfig struct {
	MaxCoverage          float64
	EstimateMaxCoverage  bool
	MaxECLengthCoefficient int // L_ec = k + coeff

	UniquenessLength  int
	PlausibilityLength int

	CoverageGap               float64 // strategy (B)
	SufficientNeighbourLength int     // strategy (B)
	UnreliableThreshold       float64 // strategy (E)
	ThornMaxLength            int     // strategy (E) chained thorn pass

	InsertSize int // strategy (G)
	ReadLength int // strategy (G)
}

// Config is the top-level configuration value consumed by Driver.Run, per
// spec section 6's table.
type Config struct {
	TC TipClipConfig
	BR BulgeConfig
	EC ECConfig

	SimplMode      Mode
	IsolatedMinLen int
	CycleIterCount int
	SingleCell     bool

	EmitDotAt map[dbg.Checkpoint]bool // "Graph" flag, per-checkpoint
}

// ReadDataset describes the external read-dataset per spec section 6:
// read length, insert size, average coverage (written back by the
// driver), and the single-cell flag.
type ReadDataset struct {
	ReadLength  int
	InsertSize  int
	AvgCoverage float64
	SingleCell  bool
}

// TipLengthBound computes L_tip = min(k, RL/2) * coeff, per the
// simp.tc.max_tip_length_coefficient row of spec section 6.
func TipLengthBound(k, readLength int, coeff float64) int {
	bound := k
	if readLength/2 < bound {
		bound = readLength / 2
	}
	return int(float64(bound) * coeff)
}

// BulgeLengthBound computes L_bulge = k * coeff.
func BulgeLengthBound(k int, coeff float64) int {
	return int(float64(k) * coeff)
}

// ECLengthBound computes L_ec = k + coeff, per spec section 6's
// simp.ec.max_ec_length_coefficient row.
func ECLengthBound(k, coeff int) int {
	return k + coeff
}
