package world

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gridplan/pkg/formats"
)

// ErrInvalidLayout is returned for malformed layout files.
var ErrInvalidLayout = errors.New("world: invalid layout")

// Size of the built-in room.
const (
	DefaultRows = 10
	DefaultCols = 10
)

// LayoutOpen is the obstacle-free room.
const LayoutOpen = "open"

var builtinLayouts = map[string]func(*Environment){
	LayoutOpen: func(*Environment) {},
	"1":        corridorObstacles,
	"2":        wallObstacles,
}

// Layouts returns the names of the built-in layouts.
func Layouts() []string {
	names := make([]string, 0, len(builtinLayouts))
	for name := range builtinLayouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewLayout creates a rows x cols room with a named obstacle layout applied.
// An empty name gives an open room; an unknown name falls back to layout "1".
func NewLayout(name string, rows, cols int, opts ...Option) *Environment {
	e := New(rows, cols, opts...)
	if name == "" {
		return e
	}
	apply, ok := builtinLayouts[name]
	if !ok {
		apply = builtinLayouts["1"]
	}
	apply(e)
	return e
}

// corridorObstacles lays two long puddle bands near the top and bottom edges,
// two shorter inner bands and a few mountains, leaving winding corridors.
func corridorObstacles(e *Environment) {
	rows, cols := e.rows, e.cols
	puddle := func(row, col int) { e.SetTile(row, col, formats.TilePuddle, PuddleCost) }
	mountain := func(row, col int) { e.SetTile(row, col, formats.TileMountain, MountainCost) }

	for i := 1; i < cols-1; i++ {
		puddle(1, i)
		puddle(rows-2, i)
	}

	mountain(1, 0)
	mountain(rows-2, cols-1)

	mountain(rows/2-1, 1)
	mountain(rows/2, 1)
	mountain(rows/2-1, cols-2)
	mountain(rows/2, cols-2)

	for i := 3; i < cols-2; i++ {
		puddle(3, i)
	}
	for i := 2; i < cols-3; i++ {
		puddle(rows-4, i)
	}
}

// wallObstacles splits the room with a vertical puddle wall open at both ends.
func wallObstacles(e *Environment) {
	for i := 1; i < e.rows-1; i++ {
		e.SetTile(i, e.cols/2-1, formats.TilePuddle, PuddleCost)
	}
}

// LayoutFile is the YAML representation of a world.
//
// Tiles may be given as an ASCII map using the render symbols
// (". w m G x"), as explicit runs, or both; runs are applied after the map.
type LayoutFile struct {
	Name  string     `yaml:"name"`
	Rows  int        `yaml:"rows"`
	Cols  int        `yaml:"cols"`
	Base  string     `yaml:"base,omitempty"`
	Map   []string   `yaml:"map,omitempty"`
	Tiles []TileRun  `yaml:"tiles,omitempty"`
	Goal  *GoalPoint `yaml:"goal,omitempty"`
}

// TileRun places Length tiles of one status starting at (Row, Col).
type TileRun struct {
	Status   string `yaml:"status"`
	Row      int    `yaml:"row"`
	Col      int    `yaml:"col"`
	Cost     *int   `yaml:"cost,omitempty"`
	Length   int    `yaml:"length,omitempty"`
	Vertical bool   `yaml:"vertical,omitempty"`
}

// GoalPoint is a target coordinate.
type GoalPoint struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// Build turns the layout description into an environment.
func (l *LayoutFile) Build(opts ...Option) (*Environment, error) {
	rows, cols := l.Rows, l.Cols
	if len(l.Map) > 0 {
		if rows == 0 {
			rows = len(l.Map)
		}
		if cols == 0 {
			cols = len(strings.Fields(l.Map[0]))
		}
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLayout, rows, cols)
	}

	e := NewLayout(l.Base, rows, cols, opts...)

	if len(l.Map) > 0 && len(l.Map) != rows {
		return nil, fmt.Errorf("%w: map has %d rows, expected %d", ErrInvalidLayout, len(l.Map), rows)
	}
	for row, line := range l.Map {
		symbols := strings.Fields(line)
		if len(symbols) != cols {
			return nil, fmt.Errorf("%w: map row %d has %d cells, expected %d", ErrInvalidLayout, row, len(symbols), cols)
		}
		for col, sym := range symbols {
			status, err := formats.ParseTileStatus(sym)
			if err != nil {
				return nil, fmt.Errorf("%w: map row %d col %d: %v", ErrInvalidLayout, row, col, err)
			}
			e.SetTile(row, col, status, DefaultCost(status))
		}
	}

	for i, run := range l.Tiles {
		status, err := formats.ParseTileStatus(run.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: tile run %d: %v", ErrInvalidLayout, i, err)
		}
		if !e.InBounds(run.Row, run.Col) {
			return nil, fmt.Errorf("%w: tile run %d starts off-grid at (%d,%d)", ErrInvalidLayout, i, run.Row, run.Col)
		}
		cost := DefaultCost(status)
		if run.Cost != nil {
			if *run.Cost < 0 {
				return nil, fmt.Errorf("%w: tile run %d has negative cost", ErrInvalidLayout, i)
			}
			if *run.Cost > formats.MaxCost {
				return nil, fmt.Errorf("%w: tile run %d cost %d exceeds %d", ErrInvalidLayout, i, *run.Cost, formats.MaxCost)
			}
			cost = *run.Cost
		}
		length := run.Length
		if length <= 0 {
			length = 1
		}
		for n := 0; n < length; n++ {
			if run.Vertical {
				e.SetTile(run.Row+n, run.Col, status, cost)
			} else {
				e.SetTile(run.Row, run.Col+n, status, cost)
			}
		}
	}

	if l.Goal != nil {
		if !e.InBounds(l.Goal.Row, l.Goal.Col) {
			return nil, fmt.Errorf("%w: goal (%d,%d) off-grid", ErrInvalidLayout, l.Goal.Row, l.Goal.Col)
		}
		e.SetTarget(l.Goal.Row, l.Goal.Col)
	}

	return e, nil
}

// ParseLayout decodes a YAML layout description.
func ParseLayout(data []byte) (*LayoutFile, error) {
	var l LayoutFile
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return &l, nil
}

// LoadFile loads an environment from a YAML layout (.yaml, .yml) or a
// binary grid map (any other extension).
func LoadFile(path string, opts ...Option) (*Environment, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading layout file: %w", err)
		}
		l, err := ParseLayout(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return l.Build(opts...)
	default:
		g, err := formats.ParseGridFile(path)
		if err != nil {
			return nil, err
		}
		return FromGrid(g, opts...), nil
	}
}
