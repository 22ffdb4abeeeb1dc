// Command gasmfy runs the de Bruijn graph simplification core over a
// previously persisted graph, the way mudesheng/ga's "smfy" subcommand
// (ga.go) invokes constructdbg.Smfy. Graph construction, k-mer counting,
// read preprocessing and contig output are external collaborators (spec
// section 1) and are not this command's job: it only loads, simplifies,
// and saves.
package main

import (
	"log"
	"os"

	"github.com/jwaldrip/odin/cli"
	"github.com/mudesheng/gasimplify/internal/dbg"
	"github.com/mudesheng/gasimplify/internal/dbg/simplify"
)

var app = cli.New("1.0.0", "De Bruijn graph simplification core", func(c cli.Command) {})

func init() {
	app.DefineStringFlag("in", "", "input graph file (zstd+gob, as written by SaveGraph)")
	app.DefineStringFlag("out", "", "output graph file")
	app.DefineIntFlag("ReadLength", 150, "average read length")
	app.DefineIntFlag("InsertSize", 300, "paired-end insert size")
	app.DefineBoolFlag("SingleCell", false, "enable single-cell pre-simplification pass")
	app.DefineIntFlag("CycleIterCount", 10, "N: simplification cycle iteration count")
	app.DefineIntFlag("IsolatedMinLen", 0, "isolated-edge removal length threshold")
	app.DefineStringFlag("SimplMode", "topology", "cheating|topology|chimeric|max_flow")
	app.DefineBoolFlag("Graph", false, "emit a dot graph at the final-simplified checkpoint")

	smfy := app.DefineSubCommand("smfy", "simplify a de Bruijn graph", runSmfy)
	{
		smfy.DefineIntFlag("TipMaxLenCoeff", 2, "simp.tc.max_tip_length_coefficient (x100)")
		smfy.DefineIntFlag("MaxTipCoverage", 2, "simp.tc.max_coverage")
		smfy.DefineIntFlag("BulgeLenCoeff", 4, "simp.br.max_bulge_length_coefficient (x100)")
		smfy.DefineIntFlag("ECLenCoeff", 100, "simp.ec.max_ec_length_coefficient")
		smfy.DefineIntFlag("MaxECCoverage", 5, "simp.ec.max_coverage")
		smfy.DefineBoolFlag("EstimateMaxCoverage", false, "percentile-estimate simp.ec.max_coverage instead")
	}
}

// flagInt/flagBool mirror the teacher's own c.Flag(name).Get().(T) access
// pattern (constructdbg.go's checkArgsSF), fatal-ing on a misconfigured
// flag instead of silently defaulting.
func flagInt(c cli.Command, name string) int {
	v, ok := c.Flag(name).Get().(int)
	if !ok {
		log.Fatalf("[gasmfy] argument '%s': %v set error", name, c.Flag(name).String())
	}
	return v
}

func flagBool(c cli.Command, name string) bool {
	v, ok := c.Flag(name).Get().(bool)
	if !ok {
		log.Fatalf("[gasmfy] argument '%s': %v set error", name, c.Flag(name).String())
	}
	return v
}

func runSmfy(c cli.Command) {
	parent := c.Parent()
	in := parent.Flag("in").String()
	out := parent.Flag("out").String()
	if in == "" || out == "" {
		log.Fatalf("[gasmfy] both -in and -out are required")
	}

	inFp, err := os.Open(in)
	if err != nil {
		log.Fatalf("[gasmfy] open %s: %v", in, err)
	}
	g, err := dbg.LoadGraph(inFp)
	inFp.Close()
	if err != nil {
		log.Fatalf("[gasmfy] load graph: %v", err)
	}

	cfg := simplify.Config{
		TC: simplify.TipClipConfig{
			MaxTipLengthCoefficient: float64(flagInt(c, "TipMaxLenCoeff")) / 100,
			MaxCoverage:             float64(flagInt(c, "MaxTipCoverage")),
			MaxRelativeCoverage:     0.5,
		},
		BR: simplify.BulgeConfig{
			MaxBulgeLengthCoefficient: float64(flagInt(c, "BulgeLenCoeff")) / 100,
			MaxCoverage:               1000,
			MaxRelativeCoverage:       2,
			MaxDelta:                  5,
			MaxRelativeDelta:          0.1,
			MaxPathsExplored:          10000,
		},
		EC: simplify.ECConfig{
			MaxCoverage:               float64(flagInt(c, "MaxECCoverage")),
			EstimateMaxCoverage:       flagBool(c, "EstimateMaxCoverage"),
			MaxECLengthCoefficient:    flagInt(c, "ECLenCoeff"),
			UniquenessLength:          500,
			PlausibilityLength:        300,
			CoverageGap:               3,
			SufficientNeighbourLength: 150,
			UnreliableThreshold:       2,
		},
		SimplMode:      parseMode(parent.Flag("SimplMode").String()),
		IsolatedMinLen: flagInt(parent, "IsolatedMinLen"),
		CycleIterCount: flagInt(parent, "CycleIterCount"),
		SingleCell:     flagBool(parent, "SingleCell"),
	}
	if flagBool(parent, "Graph") {
		cfg.EmitDotAt = map[dbg.Checkpoint]bool{dbg.CheckpointFinalSimplified: true}
	}

	rd := simplify.ReadDataset{
		ReadLength: flagInt(parent, "ReadLength"),
		InsertSize: flagInt(parent, "InsertSize"),
		SingleCell: cfg.SingleCell,
	}

	d := &simplify.Driver{
		DotSink: func(runID string, phase dbg.Checkpoint, dot string) {
			fn := out + "." + phase.String() + ".dot"
			if err := os.WriteFile(fn, []byte(dot), 0644); err != nil {
				log.Printf("[gasmfy] write dot %s: %v", fn, err)
			}
		},
	}
	avg := d.Run(g, cfg, &rd)
	log.Printf("[gasmfy] simplification done, average coverage=%.2f", avg)

	outFp, err := os.Create(out)
	if err != nil {
		log.Fatalf("[gasmfy] create %s: %v", out, err)
	}
	defer outFp.Close()
	if err := dbg.SaveGraph(outFp, g); err != nil {
		log.Fatalf("[gasmfy] save graph: %v", err)
	}
}

func parseMode(s string) simplify.Mode {
	switch s {
	case "cheating":
		return simplify.ModeCheating
	case "chimeric":
		return simplify.ModeChimeric
	case "max_flow":
		return simplify.ModeMaxFlow
	default:
		return simplify.ModeTopology
	}
}

func main() {
	app.Start()
}
