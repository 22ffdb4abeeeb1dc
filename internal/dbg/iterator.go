package dbg

import "container/heap"

// SmartEdgeIterator yields edges in ascending (length, id) order and stays
// consistent under concurrent deletion of the just-yielded edge, per spec
// section 4.2. It registers itself as a graph Observer on construction and
// must be closed (Close) to deregister.
type SmartEdgeIterator struct {
	g      *Graph
	pq     edgeHeap
	index  map[EdgeID]*edgeHeapItem
	closed bool
}

type edgeHeapItem struct {
	id     EdgeID
	length int
	heapIx int
}

type edgeHeap []*edgeHeapItem

func (h edgeHeap) Len() int { return len(h) }
func (h edgeHeap) Less(i, j int) bool {
	if h[i].length != h[j].length {
		return h[i].length < h[j].length
	}
	return h[i].id < h[j].id
}
func (h edgeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIx, h[j].heapIx = i, j
}
func (h *edgeHeap) Push(x interface{}) {
	it := x.(*edgeHeapItem)
	it.heapIx = len(*h)
	*h = append(*h, it)
}
func (h *edgeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}

// NewSmartEdgeIterator builds an iterator seeded with every edge currently
// in g, ordered by (length, id), and registers for future insert/delete
// notifications.
func NewSmartEdgeIterator(g *Graph) *SmartEdgeIterator {
	it := &SmartEdgeIterator{g: g, index: make(map[EdgeID]*edgeHeapItem)}
	for _, e := range g.AllEdges() {
		it.insert(e)
	}
	heap.Init(&it.pq)
	g.RegisterObserver(it)
	return it
}

func (it *SmartEdgeIterator) insert(e EdgeID) {
	if _, ok := it.index[e]; ok {
		return
	}
	item := &edgeHeapItem{id: e, length: it.g.Length(e)}
	it.index[e] = item
	heap.Push(&it.pq, item)
}

func (it *SmartEdgeIterator) remove(e EdgeID) {
	item, ok := it.index[e]
	if !ok {
		return
	}
	heap.Remove(&it.pq, item.heapIx)
	delete(it.index, e)
}

// OnEdgeAdded implements Observer.
func (it *SmartEdgeIterator) OnEdgeAdded(g *Graph, e EdgeID) { it.insert(e) }

// OnEdgeDeleted implements Observer.
func (it *SmartEdgeIterator) OnEdgeDeleted(g *Graph, e EdgeID) { it.remove(e) }

// IsEnd reports whether the queue is empty.
func (it *SmartEdgeIterator) IsEnd() bool { return len(it.pq) == 0 }

// Next pops and returns the shortest remaining edge (ties broken by id).
// The consumer may delete the returned edge before calling Next again;
// the deletion's OnEdgeDeleted notification is a no-op since the entry
// was already popped.
func (it *SmartEdgeIterator) Next() (EdgeID, bool) {
	if it.IsEnd() {
		return NilEdge, false
	}
	item := heap.Pop(&it.pq).(*edgeHeapItem)
	delete(it.index, item.id)
	return item.id, true
}

// Close deregisters the iterator from its graph. Further use is invalid.
func (it *SmartEdgeIterator) Close() {
	if it.closed {
		return
	}
	it.closed = true
	it.g.DeregisterObserver(it)
}

// SmartVertexIterator yields vertices in ascending id order (vertices
// have no length attribute; "smart" here only means resilience to
// concurrent deletion, consistent with the teacher's observer pattern).
type SmartVertexIterator struct {
	g   *Graph
	ids []VertexID
	pos int
}

// NewSmartVertexIterator snapshots the current vertex set in ascending id
// order. Vertices created during iteration are not visited (matching
// SmartEdgeIterator's stable-id tie-break, vertex order needs no dynamic
// re-insertion since compress() never creates new vertices).
func NewSmartVertexIterator(g *Graph) *SmartVertexIterator {
	return &SmartVertexIterator{g: g, ids: g.AllVertices()}
}

func (it *SmartVertexIterator) IsEnd() bool { return it.pos >= len(it.ids) }

func (it *SmartVertexIterator) Next() (VertexID, bool) {
	for it.pos < len(it.ids) {
		v := it.ids[it.pos]
		it.pos++
		if it.g.IsValidVertex(v) {
			return v, true
		}
	}
	return NilVertex, false
}
