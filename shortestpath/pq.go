package shortestpath

import (
	"container/heap"
)

// pqItem is a single (vertex, priority) entry in the shared priority
// queue. Dijkstra keys it by distance from the source; A* keys it by
// f-score (g-score plus heuristic). Neither driver removes stale entries
// on relaxation — both use the lazy-decrease-key pattern: push a fresh
// entry with the improved priority and let the consumer skip an entry
// for a vertex that has already been finalized.
type pqItem struct {
	vertex   int
	priority float64
}

// vertexPQ is a min-heap of *pqItem ordered by ascending priority. It
// implements container/heap.Interface and is the single
// min-priority-queue primitive shared by both Dijkstra and A*, per the
// "distinguish by variant/tag, not inheritance" design of this package.
type vertexPQ []*pqItem

func (pq vertexPQ) Len() int            { return len(pq) }
func (pq vertexPQ) Less(i, j int) bool  { return pq[i].priority < pq[j].priority }
func (pq vertexPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *vertexPQ) Push(x interface{}) { *pq = append(*pq, x.(*pqItem)) }
func (pq *vertexPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// newVertexPQ returns an empty, heap-initialized priority queue with the
// given capacity hint.
func newVertexPQ(capacityHint int) *vertexPQ {
	pq := make(vertexPQ, 0, capacityHint)
	heap.Init(&pq)
	return &pq
}

func (pq *vertexPQ) push(vertex int, priority float64) {
	heap.Push(pq, &pqItem{vertex: vertex, priority: priority})
}

func (pq *vertexPQ) popMin() *pqItem {
	return heap.Pop(pq).(*pqItem)
}

func (pq *vertexPQ) empty() bool {
	return pq.Len() == 0
}
