package analyze

import (
	"container/heap"
	"sort"
)

type rankedExample struct {
	ex  ManipulationExample
	seq int // message position, earlier wins ties
}

// exampleHeap is a min-heap on score; the root is the weakest example.
type exampleHeap []rankedExample

func (h exampleHeap) Len() int { return len(h) }
func (h exampleHeap) Less(i, j int) bool {
	if h[i].ex.Score != h[j].ex.Score {
		return h[i].ex.Score < h[j].ex.Score
	}
	return h[i].seq > h[j].seq
}
func (h exampleHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *exampleHeap) Push(x any)   { *h = append(*h, x.(rankedExample)) }
func (h *exampleHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topExamples keeps the n highest scoring manipulation examples.
type topExamples struct {
	n int
	h exampleHeap
}

func newTopExamples(n int) *topExamples {
	return &topExamples{n: n}
}

func (t *topExamples) add(ex ManipulationExample, seq int) {
	if t.n <= 0 {
		return
	}
	heap.Push(&t.h, rankedExample{ex: ex, seq: seq})
	if t.h.Len() > t.n {
		heap.Pop(&t.h)
	}
}

// sorted returns the retained examples, highest score first.
func (t *topExamples) sorted() []ManipulationExample {
	ranked := make([]rankedExample, len(t.h))
	copy(ranked, t.h)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ex.Score != ranked[j].ex.Score {
			return ranked[i].ex.Score > ranked[j].ex.Score
		}
		return ranked[i].seq < ranked[j].seq
	})
	out := make([]ManipulationExample, len(ranked))
	for i, r := range ranked {
		out[i] = r.ex
	}
	return out
}
