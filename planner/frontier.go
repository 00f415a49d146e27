package planner

import "container/heap"

// frontier is FMT*'s cost-ordered expansion queue (C8), a plain min-heap keyed by heuristic since
// FMT* inserts each node at most once (on its Unvisited -> Open transition) and pops each at most
// once, so no decrease-key support is needed (spec.md §9's design note on the frontier). Modeled on
// the container/heap nodeHeap pattern in
// other_examples/a5e7f3c1_pthm-soup__systems-astar.go.go, including the explicit index field each
// heap element carries for heap.Interface bookkeeping.
type frontier struct {
	items frontierHeap
}

func newFrontier() *frontier {
	f := &frontier{}
	heap.Init(&f.items)
	return f
}

// push inserts n into the frontier, keyed by its current heuristic value.
func (f *frontier) push(n *node) {
	heap.Push(&f.items, &frontierItem{n: n})
}

// pop removes and returns the node with the smallest heuristic. Returns nil if the frontier is empty.
func (f *frontier) pop() *node {
	if f.items.Len() == 0 {
		return nil
	}
	item := heap.Pop(&f.items).(*frontierItem)
	return item.n
}

// len reports the number of nodes currently on the frontier.
func (f *frontier) len() int { return f.items.Len() }

type frontierItem struct {
	n     *node
	index int
}

type frontierHeap []*frontierItem

func (h frontierHeap) Len() int { return len(h) }

func (h frontierHeap) Less(i, j int) bool {
	return h[i].n.heuristic < h[j].n.heuristic
}

func (h frontierHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *frontierHeap) Push(x interface{}) {
	item := x.(*frontierItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *frontierHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}
