package dbg

import (
	"strconv"

	"github.com/awalterschulze/gographviz"
)

// Dot renders the current graph as a graphviz dot string, adapted from
// GraphvizDBGArr in constructdbg.go: one record node per vertex, one edge
// per live DBGEdge, labelled with id/length/coverage instead of the
// per-base incoming/outgoing arrays (which this package's vertex no
// longer models — see vertex.go).
func (g *Graph) Dot() string {
	gv := gographviz.NewGraph()
	gv.SetName("G")
	gv.SetDir(true)
	gv.SetStrict(false)

	for _, v := range g.AllVertices() {
		attr := map[string]string{
			"color": "Green",
			"shape": "record",
			"label": "\"" + strconv.Itoa(int(v)) + "\"",
		}
		gv.AddNode("G", strconv.Itoa(int(v)), attr)
	}

	for _, e := range g.AllEdges() {
		ee := g.e(e)
		attr := map[string]string{
			"color": "Blue",
			"label": "\"ID:" + strconv.Itoa(int(e)) + " len:" + strconv.Itoa(g.Length(e)) +
				" cov:" + strconv.FormatFloat(g.Coverage(e), 'f', 1, 64) + "\"",
		}
		gv.AddEdge(strconv.Itoa(int(ee.start)), strconv.Itoa(int(ee.end)), true, attr)
	}

	return gv.String()
}
