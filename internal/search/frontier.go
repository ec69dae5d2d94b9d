package search

// frontier is an open set of state handles.
type frontier interface {
	push(h int)
	pop() int
	Len() int
}

// stack is a LIFO frontier.
type stack []int

func (s *stack) push(h int) { *s = append(*s, h) }

func (s *stack) pop() int {
	old := *s
	h := old[len(old)-1]
	*s = old[:len(old)-1]
	return h
}

func (s stack) Len() int { return len(s) }

// queue is a FIFO frontier.
type queue struct {
	items []int
	head  int
}

func (q *queue) push(h int) { q.items = append(q.items, h) }

func (q *queue) pop() int {
	h := q.items[q.head]
	q.head++
	// Compact once the consumed prefix dominates the slice.
	if q.head > 64 && q.head*2 > len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return h
}

func (q *queue) Len() int { return len(q.items) - q.head }

// stateHeap is a container/heap priority queue ordered by ascending F.
// Ties go to the state discovered first so runs are reproducible.
type stateHeap struct {
	arena *Arena
	items []int
}

func newStateHeap(a *Arena) *stateHeap {
	return &stateHeap{arena: a}
}

func (h *stateHeap) Len() int { return len(h.items) }

func (h *stateHeap) Less(i, j int) bool {
	a, b := h.arena.states[h.items[i]], h.arena.states[h.items[j]]
	if a.F != b.F {
		return a.F < b.F
	}
	return h.items[i] < h.items[j]
}

func (h *stateHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.arena.states[h.items[i]].index = i
	h.arena.states[h.items[j]].index = j
}

func (h *stateHeap) Push(x any) {
	handle := x.(int)
	h.arena.states[handle].index = len(h.items)
	h.items = append(h.items, handle)
}

func (h *stateHeap) Pop() any {
	old := h.items
	n := len(old)
	handle := old[n-1]
	h.items = old[:n-1]
	h.arena.states[handle].index = -1
	return handle
}
