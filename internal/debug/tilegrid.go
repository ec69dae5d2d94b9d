// Package debug provides debug visualization utilities.
package debug

import (
	"strings"

	"github.com/Faultbox/gridplan/internal/search"
)

// TileGridRenderer dumps the tile grid as text, one character per tile.
type TileGridRenderer struct {
	world search.World
}

// NewTileGridRenderer creates a new tile grid renderer.
func NewTileGridRenderer(w search.World) *TileGridRenderer {
	if w == nil {
		return nil
	}
	return &TileGridRenderer{world: w}
}

// Route returns the cells visited by a plan, start first.
func Route(start search.Coord, p *search.Path) []search.Coord {
	route := []search.Coord{start}
	if p != nil {
		route = append(route, p.Cells...)
	}
	return route
}

// Render returns the grid with tiles separated by spaces and rows by
// newlines. Tiles on route are marked S (first cell), G (goal) or *.
// A nil or empty route renders the bare terrain.
func (t *TileGridRenderer) Render(route []search.Coord) string {
	if t == nil || t.world == nil {
		return ""
	}

	onRoute := make(map[search.Coord]bool, len(route))
	for _, c := range route {
		onRoute[c] = true
	}

	var sb strings.Builder
	rows, cols := t.world.Rows(), t.world.Cols()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(t.symbol(search.Coord{Row: row, Col: col}, route, onRoute))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (t *TileGridRenderer) symbol(c search.Coord, route []search.Coord, onRoute map[search.Coord]bool) byte {
	status := t.world.Status(c.Row, c.Col)
	if !onRoute[c] {
		return status.Symbol()
	}
	switch {
	case status.Symbol() == 'G':
		return 'G'
	case c == route[0]:
		return 'S'
	default:
		return '*'
	}
}
