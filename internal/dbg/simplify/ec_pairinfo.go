package simplify

import (
	"github.com/mudesheng/gasimplify/internal/dbg"
	"github.com/mudesheng/gasimplify/internal/dbg/remove"
)

// PairedReadProvider answers whether at least one paired-end read spans
// a candidate edge, parameterized by insert size and read length (spec
// section 4.7, strategy G). Paired-read alignment itself is an external
// collaborator (spec section 1's "Out of scope" list): a full pipeline's
// provider would walk BAM/SAM alignment records (as the teacher's own
// bam.go does with github.com/biogo/hts) and translate each read pair's
// reference span into graph-edge coverage, a read-placement step this
// module does not implement. Tests exercise PairedReadProvider with a
// synthetic in-memory double (see ec_pairinfo_test.go).
type PairedReadProvider interface {
	// SpannedByPair reports whether any read pair supports edge e, given
	// the configured insert size and read length.
	SpannedByPair(g *dbg.Graph, e dbg.EdgeID, insertSize, readLength int) bool
}

// pairInfoAware is strategy (G): remove short edges unsupported by any
// paired-end read pair spanning them.
type pairInfoAware struct {
	L          int
	insertSize int
	readLength int
	provider   PairedReadProvider
}

func (s pairInfoAware) Run(g *dbg.Graph) bool {
	if s.provider == nil {
		return false
	}
	r := remove.New(g)
	it := dbg.NewSmartEdgeIterator(g)
	defer it.Close()
	for !it.IsEnd() {
		e, ok := it.Next()
		if !ok {
			break
		}
		if !g.IsValidEdge(e) || g.Length(e) > s.L {
			continue
		}
		if !s.provider.SpannedByPair(g, e, s.insertSize, s.readLength) {
			r.Remove(e)
		}
	}
	return r.Removed() > 0
}
