// Package config handles planner configuration loading and management.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config holds all planner settings.
type Config struct {
	Planner    PlannerConfig    `yaml:"planner"`
	World      WorldConfig      `yaml:"world"`
	Simulation SimulationConfig `yaml:"simulation"`
	Compare    CompareConfig    `yaml:"compare"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// PlannerConfig holds search settings.
type PlannerConfig struct {
	Strategy      string `yaml:"strategy" validate:"required,strategy"`
	Heuristic     string `yaml:"heuristic" validate:"oneof=euclidean manhattan"`
	MaxExpansions int    `yaml:"max_expansions" validate:"gte=0"`
	StepCost      bool   `yaml:"step_cost"` // A* charges move length on top of terrain cost
	Seed          int64  `yaml:"seed"`
}

// WorldConfig describes the grid to plan across.
type WorldConfig struct {
	Rows         int    `yaml:"rows" validate:"gte=1,lte=4096"`
	Cols         int    `yaml:"cols" validate:"gte=1,lte=4096"`
	Layout       string `yaml:"layout" validate:"layout"`
	LayoutFile   string `yaml:"layout_file"` // YAML layout or binary map, overrides layout
	HeavyTerrain string `yaml:"heavy_terrain" validate:"oneof=impassable enterable"`
	Start        Point  `yaml:"start"`
	Goal         *Point `yaml:"goal,omitempty"` // nil keeps the layout's goal
}

// Point is a grid coordinate.
type Point struct {
	Row int `yaml:"row" validate:"gte=0"`
	Col int `yaml:"col" validate:"gte=0"`
}

// String formats the point as "row,col", the flag syntax.
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// ParsePoint parses "row,col".
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("point %q: want row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Point{}, fmt.Errorf("point %q: row: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Point{}, fmt.Errorf("point %q: col: %w", s, err)
	}
	return Point{Row: row, Col: col}, nil
}

// SimulationConfig holds tick loop settings.
type SimulationConfig struct {
	MaxTicks int `yaml:"max_ticks" validate:"gte=1"`
}

// CompareConfig holds batch comparison settings.
type CompareConfig struct {
	Trials  int      `yaml:"trials" validate:"gte=1"`
	Layouts []string `yaml:"layouts" validate:"dive,layout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" validate:"oneof=debug info warn error"`
	LogFile string `yaml:"log_file"`
}

// MetricsConfig holds metrics export settings. Metrics are collected only
// when File is set.
type MetricsConfig struct {
	File      string `yaml:"file"`
	Namespace string `yaml:"namespace"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			Strategy:      "AStar",
			Heuristic:     "euclidean",
			MaxExpansions: 100000,
			StepCost:      true,
			Seed:          1,
		},
		World: WorldConfig{
			Rows:         10,
			Cols:         10,
			Layout:       "1",
			HeavyTerrain: "impassable",
			Start:        Point{Row: 0, Col: 0},
			Goal:         &Point{Row: 9, Col: 9},
		},
		Simulation: SimulationConfig{
			MaxTicks: 200,
		},
		Compare: CompareConfig{
			Trials: 10,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Metrics: MetricsConfig{
			Namespace: "gridplan",
		},
	}
}
