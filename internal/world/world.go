// Package world handles the grid environment the agent plans across.
package world

import (
	"github.com/Faultbox/gridplan/pkg/formats"
)

// HeavyTerrainPolicy decides whether heavy terrain (puddles) can be entered.
type HeavyTerrainPolicy int

const (
	// HeavyTerrainImpassable treats puddles as walls regardless of their cost.
	HeavyTerrainImpassable HeavyTerrainPolicy = iota
	// HeavyTerrainEnterable lets the agent wade through puddles at their stored cost.
	HeavyTerrainEnterable
)

// String returns the config name of the policy.
func (p HeavyTerrainPolicy) String() string {
	if p == HeavyTerrainEnterable {
		return "enterable"
	}
	return "impassable"
}

// ParseHeavyTerrainPolicy converts a config value into a policy.
// Anything other than "enterable" maps to HeavyTerrainImpassable.
func ParseHeavyTerrainPolicy(s string) HeavyTerrainPolicy {
	if s == "enterable" {
		return HeavyTerrainEnterable
	}
	return HeavyTerrainImpassable
}

// Default tile costs.
const (
	PlainCost    = 1
	MountainCost = 5
	PuddleCost   = formats.MaxCost
)

// DefaultCost returns the cost a freshly placed tile of the given status carries.
func DefaultCost(status formats.TileStatus) int {
	switch status {
	case formats.TileMountain:
		return MountainCost
	case formats.TilePuddle, formats.TileImpassable:
		return PuddleCost
	default:
		return PlainCost
	}
}

// Option configures an Environment.
type Option func(*Environment)

// WithHeavyTerrain sets the heavy terrain policy.
func WithHeavyTerrain(p HeavyTerrainPolicy) Option {
	return func(e *Environment) {
		e.heavy = p
	}
}

// Environment is a fixed-size rectangular grid of tiles with at most one target.
// Rows refer to the height of the environment, columns to its width.
type Environment struct {
	rows, cols int
	tiles      []formats.Tile

	targetRow, targetCol int
	hasTarget            bool

	heavy HeavyTerrainPolicy
}

// New creates a rows x cols environment of plain tiles with no target.
func New(rows, cols int, opts ...Option) *Environment {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	e := &Environment{
		rows:  rows,
		cols:  cols,
		tiles: make([]formats.Tile, rows*cols),
	}
	for i := range e.tiles {
		e.tiles[i] = formats.Tile{Status: formats.TilePlain, Cost: PlainCost}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromGrid builds an environment from a parsed grid map.
// If the map holds several target tiles the last one wins.
func FromGrid(g *formats.Grid, opts ...Option) *Environment {
	e := New(int(g.Rows), int(g.Cols), opts...)
	for row := 0; row < e.rows; row++ {
		for col := 0; col < e.cols; col++ {
			t := g.GetTile(row, col)
			e.SetTile(row, col, t.Status, int(t.Cost))
		}
	}
	return e
}

// Grid exports the environment as a grid map.
func (e *Environment) Grid() *formats.Grid {
	tiles := make([]formats.Tile, len(e.tiles))
	copy(tiles, e.tiles)
	return &formats.Grid{
		Version: formats.CurrentGridVersion,
		Rows:    uint32(e.rows),
		Cols:    uint32(e.cols),
		Tiles:   tiles,
	}
}

// Rows returns the grid height.
func (e *Environment) Rows() int { return e.rows }

// Cols returns the grid width.
func (e *Environment) Cols() int { return e.cols }

// HeavyTerrain returns the heavy terrain policy in effect.
func (e *Environment) HeavyTerrain() HeavyTerrainPolicy { return e.heavy }

// InBounds reports whether (row, col) lies on the grid.
func (e *Environment) InBounds(row, col int) bool {
	return row >= 0 && row < e.rows && col >= 0 && col < e.cols
}

func (e *Environment) tile(row, col int) *formats.Tile {
	return &e.tiles[row*e.cols+col]
}

// Status returns the status of the tile at (row, col).
// Off-grid coordinates are impassable.
func (e *Environment) Status(row, col int) formats.TileStatus {
	if !e.InBounds(row, col) {
		return formats.TileImpassable
	}
	return e.tile(row, col).Status
}

// Cost returns the entry cost of the tile at (row, col).
// Off-grid coordinates cost formats.MaxCost.
func (e *Environment) Cost(row, col int) int {
	if !e.InBounds(row, col) {
		return formats.MaxCost
	}
	return int(e.tile(row, col).Cost)
}

// IsTraversable reports whether the agent may enter (row, col).
// A tile can carry a finite cost and still not be enterable.
func (e *Environment) IsTraversable(row, col int) bool {
	if !e.InBounds(row, col) {
		return false
	}
	status := e.tile(row, col).Status
	if status.IsBlocked() {
		return false
	}
	if status.IsHeavy() && e.heavy == HeavyTerrainImpassable {
		return false
	}
	return true
}

// GoalLocation returns the target tile, if one is set.
func (e *Environment) GoalLocation() (row, col int, ok bool) {
	return e.targetRow, e.targetCol, e.hasTarget
}

// GoalReached reports whether (row, col) is the target tile.
func (e *Environment) GoalReached(row, col int) bool {
	return e.hasTarget && row == e.targetRow && col == e.targetCol
}

// SetTarget moves the single target to (row, col). The previous target tile
// becomes plain ground. Out of bounds coordinates are ignored.
func (e *Environment) SetTarget(row, col int) {
	if !e.InBounds(row, col) {
		return
	}
	if e.hasTarget {
		*e.tile(e.targetRow, e.targetCol) = formats.Tile{Status: formats.TilePlain, Cost: PlainCost}
	}
	e.targetRow, e.targetCol = row, col
	e.hasTarget = true
	*e.tile(row, col) = formats.Tile{Status: formats.TileTarget, Cost: PlainCost}
}

// SetTile replaces the tile at (row, col). Placing a target moves the
// existing one; overwriting the current target clears it.
// Out of bounds coordinates are ignored. Costs are clamped to 0..formats.MaxCost.
func (e *Environment) SetTile(row, col int, status formats.TileStatus, cost int) {
	if !e.InBounds(row, col) {
		return
	}
	cost = min(max(cost, 0), formats.MaxCost)
	if status == formats.TileTarget {
		e.SetTarget(row, col)
		e.tile(row, col).Cost = int32(cost)
		return
	}
	if e.GoalReached(row, col) {
		e.hasTarget = false
	}
	*e.tile(row, col) = formats.Tile{Status: status, Cost: int32(cost)}
}

// NumTiles counts the tiles that are not walls.
func (e *Environment) NumTiles() int {
	count := 0
	for _, t := range e.tiles {
		if t.Status != formats.TileImpassable {
			count++
		}
	}
	return count
}
