package search

import "container/heap"

// aStar expands states in ascending f = g + h order.
//
// Entering a neighbor costs its terrain cost plus, with Options.StepCost,
// the geometric step length. Without step cost the heuristic is scaled by
// the cheapest enterable cell so it stays consistent with terrain-only g.
// When a cheaper route to a queued state is found its single arena record
// is relaxed and re-keyed in place. Closed states are never reopened.
func aStar(w World, r *Result, o *Options) error {
	a := r.Arena
	open := newStateHeap(a)

	scale := 1.0
	if !o.StepCost {
		scale = minEntryCost(w)
	}
	h := func(c Coord) float64 {
		return scale * o.Heuristic.Distance(c, r.GoalAt)
	}

	start, _ := a.GetOrPut(r.Start)
	st := a.State(start)
	st.G = 0
	st.F = h(r.Start)
	heap.Push(open, start)

	var buf []step
	for open.Len() > 0 {
		if r.Steps >= o.MaxExpansions {
			return ErrSearchExhausted
		}
		cur := heap.Pop(open).(int)
		r.Steps++

		cs := a.State(cur)
		cs.closed = true
		c, g := cs.Coord, cs.G
		o.OnExpand(c)
		if c == r.GoalAt {
			r.Goal = cur
			return nil
		}

		buf = neighbors(w, c, buf)
		for _, s := range buf {
			nh, _ := a.GetOrPut(s.to)
			ns := a.State(nh)
			if ns.closed {
				continue
			}

			tentative := g + float64(w.Cost(s.to.Row, s.to.Col))
			if o.StepCost {
				tentative += stepDistance(c, s.to)
			}
			if tentative >= ns.G {
				continue
			}
			ns.G = tentative
			ns.F = tentative + h(s.to)
			a.SetParent(nh, cur, s.action)
			r.Expanded++

			if ns.index >= 0 {
				heap.Fix(open, ns.index)
			} else {
				heap.Push(open, nh)
			}
		}
	}
	return ErrNoPath
}

// minEntryCost is the lowest terrain cost of any traversable cell, 0 when
// none is traversable.
func minEntryCost(w World) float64 {
	lowest := -1
	for row := 0; row < w.Rows(); row++ {
		for col := 0; col < w.Cols(); col++ {
			if !w.IsTraversable(row, col) {
				continue
			}
			if c := w.Cost(row, col); lowest < 0 || c < lowest {
				lowest = c
			}
		}
	}
	return float64(max(lowest, 0))
}
