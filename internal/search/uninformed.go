package search

// depthFirst explores the most recently discovered state first.
func depthFirst(w World, r *Result, o *Options) error {
	return walkFrontier(w, r, o, &stack{})
}

// breadthFirst explores states in order of discovery, so every state at
// depth d is expanded before any state at depth d+1.
func breadthFirst(w World, r *Result, o *Options) error {
	return walkFrontier(w, r, o, &queue{})
}

// walkFrontier is the shared loop of the uninformed strategies. A state is
// marked visited when it is admitted, so nothing is queued twice and costs
// are never compared.
func walkFrontier(w World, r *Result, o *Options, f frontier) error {
	a := r.Arena
	start, _ := a.GetOrPut(r.Start)
	a.State(start).G = 0
	f.push(start)

	var buf []step
	for f.Len() > 0 {
		if r.Steps >= o.MaxExpansions {
			return ErrSearchExhausted
		}
		cur := f.pop()
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
			r.Expanded++
			f.push(h)
		}
	}
	return ErrNoPath
}
