package search

import "fmt"

// Action is a single move of the agent.
type Action int

// Action vocabulary. The four moves are listed in canonical neighbor order.
const (
	MoveRight Action = iota
	MoveLeft
	MoveUp
	MoveDown
	DoNothing
)

// moves is the neighbor generation order shared by every strategy.
var moves = [...]Action{MoveRight, MoveLeft, MoveUp, MoveDown}

// Delta returns the row and column offset of the action.
func (a Action) Delta() (dRow, dCol int) {
	switch a {
	case MoveRight:
		return 0, 1
	case MoveLeft:
		return 0, -1
	case MoveUp:
		return -1, 0
	case MoveDown:
		return 1, 0
	default:
		return 0, 0
	}
}

// String returns the action name.
func (a Action) String() string {
	switch a {
	case MoveRight:
		return "MOVE_RIGHT"
	case MoveLeft:
		return "MOVE_LEFT"
	case MoveUp:
		return "MOVE_UP"
	case MoveDown:
		return "MOVE_DOWN"
	case DoNothing:
		return "DO_NOTHING"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Coord is a grid coordinate.
type Coord struct {
	Row, Col int
}

// Apply returns the coordinate reached by taking action a from c.
func (c Coord) Apply(a Action) Coord {
	dr, dc := a.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// String returns "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
