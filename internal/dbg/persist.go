package dbg

import (
	"bytes"
	"encoding/gob"
	"io"

	"github.com/klauspost/compress/zstd"
)

// vertexSnap/edgeSnap are exported mirrors of the unexported vertex/edge
// arena structs: gob only encodes exported fields, so the snapshot type
// cannot embed vertex/edge directly.
type vertexSnap struct {
	ID        VertexID
	Conjugate VertexID
	In        []EdgeID
	Out       []EdgeID
	Free      bool
}

type edgeSnap struct {
	ID        EdgeID
	Conjugate EdgeID
	Start     VertexID
	End       VertexID
	Seq       []byte
	Coverage  float64
	Free      bool
}

// snapshot is the gob-serializable projection of a Graph's arena, used by
// SaveGraph/LoadGraph. It mirrors the teacher's StoreEdgesToFn persistence
// shape (constructdbg.go) but round-trips the whole arena rather than just
// the edge slice, so vertices, adjacency and free lists come back too.
type snapshot struct {
	K            int
	HasConjugate bool
	Vertices     []vertexSnap
	Edges        []edgeSnap
	FreeVertices []VertexID
	FreeEdges    []EdgeID
}

// SaveGraph gob-encodes g and compresses the stream with zstd, matching
// the teacher's use of zstd.NewWriter for edge-store persistence
// (constructdbg.go's StoreEdgesToFn).
func SaveGraph(w io.Writer, g *Graph) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderCRC(false), zstd.WithEncoderConcurrency(1), zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	snap := snapshot{
		K:            g.K,
		HasConjugate: g.hasConjugate,
		FreeVertices: g.freeVertices,
		FreeEdges:    g.freeEdges,
	}
	for _, v := range g.vertices {
		snap.Vertices = append(snap.Vertices, vertexSnap{
			ID: v.id, Conjugate: v.conjugate, In: v.in, Out: v.out, Free: v.free,
		})
	}
	for _, e := range g.edges {
		snap.Edges = append(snap.Edges, edgeSnap{
			ID: e.id, Conjugate: e.conjugate, Start: e.start, End: e.end,
			Seq: e.seq, Coverage: e.coverage, Free: e.free,
		})
	}
	if err := gob.NewEncoder(zw).Encode(&snap); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// LoadGraph reverses SaveGraph. The returned graph has no observers
// registered (observer registration is a runtime-only concern).
func LoadGraph(r io.Reader) (*Graph, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, zr); err != nil {
		return nil, err
	}
	var snap snapshot
	if err := gob.NewDecoder(&buf).Decode(&snap); err != nil {
		return nil, err
	}
	g := &Graph{
		K:            snap.K,
		hasConjugate: snap.HasConjugate,
		freeVertices: snap.FreeVertices,
		freeEdges:    snap.FreeEdges,
	}
	for _, v := range snap.Vertices {
		g.vertices = append(g.vertices, vertex{
			id: v.ID, conjugate: v.Conjugate, in: v.In, out: v.Out, free: v.Free,
		})
	}
	for _, e := range snap.Edges {
		g.edges = append(g.edges, edge{
			id: e.ID, conjugate: e.Conjugate, start: e.Start, end: e.End,
			seq: e.Seq, coverage: e.Coverage, free: e.Free,
		})
	}
	return g, nil
}
