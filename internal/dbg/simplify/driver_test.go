package simplify

import (
	"strings"
	"testing"

	"github.com/mudesheng/gasimplify/internal/dbg"
)

func baseConfig() Config {
	return Config{
		TC: TipClipConfig{MaxTipLengthCoefficient: 1, MaxCoverage: 2, MaxRelativeCoverage: 0.5},
		BR: BulgeConfig{MaxBulgeLengthCoefficient: 1, MaxCoverage: 10, MaxRelativeCoverage: 2, MaxDelta: 2, MaxRelativeDelta: 0.5, MaxPathsExplored: 1000},
		EC: ECConfig{MaxCoverage: 2, MaxECLengthCoefficient: 5, UniquenessLength: 500, PlausibilityLength: 300, UnreliableThreshold: 2},
		SimplMode:      ModeTopology,
		IsolatedMinLen: 0,
		CycleIterCount: 3,
	}
}

func TestDriverRunLeavesNoCompressibleVertexAndComputesAverageCoverage(t *testing.T) {
	g := dbg.NewGraph(5, false)
	hub, tipEnd, x, y := g.AddVertex(), g.AddVertex(), g.AddVertex(), g.AddVertex()
	g.AddEdge(hub, tipEnd, seqOfLen(5+2), 1) // tip, short and low-coverage
	g.AddEdge(hub, x, seqOfLen(5+20), 20)
	g.AddEdge(hub, y, seqOfLen(5+20), 20)

	rd := ReadDataset{ReadLength: 100, InsertSize: 300}
	d := &Driver{}
	avg := d.Run(g, baseConfig(), &rd)

	for _, v := range g.AllVertices() {
		if g.Compressible(v) {
			t.Fatalf("expected no compressible vertex after Driver.Run, found %v", v)
		}
	}
	if avg <= 0 {
		t.Fatalf("expected a positive average coverage, got %v", avg)
	}
	if rd.AvgCoverage != avg {
		t.Fatalf("expected ReadDataset.AvgCoverage written back, want %v got %v", avg, rd.AvgCoverage)
	}
}

func TestDriverRunInvokesPrinterAtEveryCheckpoint(t *testing.T) {
	g := dbg.NewGraph(5, false)
	a, b := g.AddVertex(), g.AddVertex()
	g.AddEdge(a, b, seqOfLen(5+20), 10)

	var seen []dbg.Checkpoint
	d := &Driver{Printer: func(runID string, phase dbg.Checkpoint, suffix string) {
		seen = append(seen, phase)
	}}
	rd := ReadDataset{ReadLength: 100, InsertSize: 300}
	cfg := baseConfig()
	cfg.CycleIterCount = 1
	d.Run(g, cfg, &rd)

	want := []dbg.Checkpoint{
		dbg.CheckpointBeforeSimplification,
		dbg.CheckpointTipClipping,
		dbg.CheckpointBulgeRemoval,
		dbg.CheckpointErrConRemoval,
		dbg.CheckpointBeforeFinalErrConRemoval,
		dbg.CheckpointFinalErrConRemoval,
		dbg.CheckpointFinalTipClipping,
		dbg.CheckpointFinalBulgeRemoval,
		dbg.CheckpointRemovingIsolatedEdges,
		dbg.CheckpointFinalSimplified,
	}
	if len(seen) != len(want) {
		t.Fatalf("expected %d checkpoints, got %d: %v", len(want), len(seen), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("checkpoint %d: want %v got %v", i, want[i], seen[i])
		}
	}
}

func TestDriverRunEmitsDotOnlyAtConfiguredCheckpoints(t *testing.T) {
	g := dbg.NewGraph(5, false)
	a, b := g.AddVertex(), g.AddVertex()
	g.AddEdge(a, b, seqOfLen(5+20), 10)

	var dotCalls []dbg.Checkpoint
	d := &Driver{DotSink: func(runID string, phase dbg.Checkpoint, dot string) {
		dotCalls = append(dotCalls, phase)
		if !strings.Contains(dot, "digraph") {
			t.Fatalf("expected a dot-format graph, got %q", dot)
		}
	}}
	rd := ReadDataset{ReadLength: 100, InsertSize: 300}
	cfg := baseConfig()
	cfg.CycleIterCount = 1
	cfg.EmitDotAt = map[dbg.Checkpoint]bool{dbg.CheckpointFinalSimplified: true}
	d.Run(g, cfg, &rd)

	if len(dotCalls) != 1 || dotCalls[0] != dbg.CheckpointFinalSimplified {
		t.Fatalf("expected exactly one dot emission at CheckpointFinalSimplified, got %v", dotCalls)
	}
}

func TestSingleCellPreSimplificationRunsBeforeMainCycle(t *testing.T) {
	g := dbg.NewGraph(5, false)
	hub, tipEnd, x, y := g.AddVertex(), g.AddVertex(), g.AddVertex(), g.AddVertex()
	tip := g.AddEdge(hub, tipEnd, seqOfLen(5+2), 1)
	g.AddEdge(hub, x, seqOfLen(5+20), 20)
	g.AddEdge(hub, y, seqOfLen(5+20), 20)

	var firstPhase dbg.Checkpoint = -1
	d := &Driver{Printer: func(runID string, phase dbg.Checkpoint, suffix string) {
		if firstPhase == -1 {
			firstPhase = phase
		}
	}}
	rd := ReadDataset{ReadLength: 100, InsertSize: 300, SingleCell: true}
	cfg := baseConfig()
	cfg.SingleCell = true
	cfg.CycleIterCount = 1
	d.Run(g, cfg, &rd)

	if g.IsValidEdge(tip) {
		t.Fatalf("expected tip removed by single-cell pre-pass or the main cycle")
	}
	if firstPhase != dbg.CheckpointBeforeSimplification {
		t.Fatalf("expected the first checkpoint to still be CheckpointBeforeSimplification, got %v", firstPhase)
	}
}
