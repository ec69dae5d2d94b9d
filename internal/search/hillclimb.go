package search

// hillClimb walks from the start by moving to a uniformly random unvisited
// neighbor. At a dead end the walk forgets every visited state and restarts
// from the start. There is no termination guarantee beyond the ceiling,
// except that a fresh walk stuck at the start proves the goal unreachable.
func hillClimb(w World, r *Result, o *Options) error {
	a := r.Arena
	rng := o.rand()

	cur, _ := a.GetOrPut(r.Start)
	a.State(cur).G = 0

	var buf []step
	for {
		if r.Steps >= o.MaxExpansions {
			return ErrSearchExhausted
		}
		r.Steps++

		c := a.State(cur).Coord
		o.OnExpand(c)
		if c == r.GoalAt {
			r.Goal = cur
			return nil
		}

		buf = neighbors(w, c, buf)
		candidates := buf[:0]
		for _, s := range buf {
			if _, seen := a.Lookup(s.to); !seen {
				candidates = append(candidates, s)
			}
		}
		r.Expanded += len(candidates)

		if len(candidates) == 0 {
			if a.Len() == 1 {
				return ErrNoPath
			}
			r.Restarts++
			a.reset()
			cur, _ = a.GetOrPut(r.Start)
			a.State(cur).G = 0
			continue
		}

		pick := candidates[rng.Intn(len(candidates))]
		next, _ := a.GetOrPut(pick.to)
		a.SetParent(next, cur, pick.action)
		ns := a.State(next)
		ns.G = a.State(cur).G + float64(w.Cost(pick.to.Row, pick.to.Col))
		cur = next
	}
}
