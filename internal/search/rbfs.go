package search

import "container/heap"

// recursiveBestFirst is the simplified RBFS policy: always expand the state
// with the lowest f, where a neighbor's f is its heuristic plus the cost of
// entering it. Accumulated path cost is ignored and no backtracking bound is
// kept, so this is a greedy best-first search. States are admitted once.
func recursiveBestFirst(w World, r *Result, o *Options) error {
	a := r.Arena
	open := newStateHeap(a)

	start, _ := a.GetOrPut(r.Start)
	st := a.State(start)
	st.G = 0
	st.F = o.Heuristic.Distance(r.Start, r.GoalAt)
	heap.Push(open, start)

	var buf []step
	for open.Len() > 0 {
		if r.Steps >= o.MaxExpansions {
			return ErrSearchExhausted
		}
		cur := heap.Pop(open).(int)
		r.Steps++

		c := a.State(cur).Coord
		o.OnExpand(c)
		if c == r.GoalAt {
			r.Goal = cur
			return nil
		}

		buf = neighbors(w, c, buf)
		for _, s := range buf {
			h, created := a.GetOrPut(s.to)
			if !created {
				continue
			}
			a.SetParent(h, cur, s.action)
			a.State(h).F = o.Heuristic.Distance(s.to, r.GoalAt) + float64(w.Cost(s.to.Row, s.to.Col))
			r.Expanded++
			heap.Push(open, h)
		}
	}
	return ErrNoPath
}
