// Package sim drives an agent through a world one action per tick.
package sim

import (
	"github.com/Faultbox/gridplan/internal/planner"
	"github.com/Faultbox/gridplan/internal/search"
)

// Agent follows a plan produced once by its planner.
type Agent struct {
	planner  *planner.Planner
	strategy search.Strategy
	pos      search.Coord

	// Current plan
	plan        *planner.Plan
	actionIndex int

	// IsFollowingPlan is true while planned actions remain.
	IsFollowingPlan bool
}

// NewAgent creates an agent standing on the planner's start.
func NewAgent(p *planner.Planner, strategy search.Strategy) *Agent {
	return &Agent{
		planner:  p,
		strategy: strategy,
		pos:      p.Start(),
	}
}

// Strategy returns the strategy the agent plans with.
func (a *Agent) Strategy() search.Strategy {
	return a.strategy
}

// Plan computes the plan on first use and returns it afterwards.
// A plan that found no route leaves the agent idle.
func (a *Agent) Plan() (*planner.Plan, error) {
	if a.plan != nil {
		return a.plan, nil
	}
	plan, err := a.planner.Plan(a.strategy)
	if err != nil {
		return nil, err
	}
	a.plan = plan
	a.actionIndex = 0
	a.IsFollowingPlan = plan.Found && plan.Len() > 0
	return plan, nil
}

// NextAction returns the next planned action, or DoNothing when there is
// no plan or it is used up.
func (a *Agent) NextAction() search.Action {
	if a.plan == nil || a.actionIndex >= a.plan.Len() {
		a.IsFollowingPlan = false
		return search.DoNothing
	}
	action := a.plan.Actions[a.actionIndex]
	a.actionIndex++
	a.IsFollowingPlan = a.actionIndex < a.plan.Len()
	return action
}

// Position returns the cell the agent stands on.
func (a *Agent) Position() search.Coord {
	return a.pos
}

// ActionIndex returns how many planned actions have been handed out.
func (a *Agent) ActionIndex() int {
	return a.actionIndex
}

func (a *Agent) moveTo(c search.Coord) {
	a.pos = c
}
