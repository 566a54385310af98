package locations

import "container/heap"

// Result is a scored index entry. Score is exported and stays on the
// value returned to callers, so it is also part of the JSON encoding.
type Result struct {
	Kind    Kind
	Country string
	State   string
	City    string
	Score   float64
}

// scoredHeap is a min-heap over Result, ordered by ascending Score so
// the lowest-scored retained entry sits at the root and is the first
// evicted once the heap reaches capacity.
type scoredHeap []Result

func (h scoredHeap) Len() int            { return len(h) }
func (h scoredHeap) Less(i, j int) bool  { return h[i].Score < h[j].Score }
func (h scoredHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *scoredHeap) Push(x interface{}) { *h = append(*h, x.(Result)) }
func (h *scoredHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Search scores every entry in entries against q and returns the top k
// by score, descending. q must already be normalized (empty input is
// rejected by the caller before reaching here, per the normalization
// contract in package text). k defaults to 20 when non-positive.
func Search(entries []Entry, q string, k int, w Weights) []Result {
	if k <= 0 {
		k = 20
	}

	h := &scoredHeap{}
	heap.Init(h)

	for _, e := range entries {
		score := Score(e, q, w)
		if score <= 0 {
			continue
		}
		result := Result{Kind: e.Kind, Country: e.Country, State: e.State, City: e.City, Score: score}

		if h.Len() < k {
			heap.Push(h, result)
			continue
		}
		if score > (*h)[0].Score {
			heap.Pop(h)
			heap.Push(h, result)
		}
	}

	out := make([]Result, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(Result)
	}
	return out
}
