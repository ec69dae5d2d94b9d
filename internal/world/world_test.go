package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/gridplan/pkg/formats"
)

func TestNew_OpenRoom(t *testing.T) {
	e := New(4, 6)

	if e.Rows() != 4 || e.Cols() != 6 {
		t.Fatalf("expected 4x6, got %dx%d", e.Rows(), e.Cols())
	}
	if e.NumTiles() != 24 {
		t.Errorf("expected 24 tiles, got %d", e.NumTiles())
	}
	if _, _, ok := e.GoalLocation(); ok {
		t.Error("new environment should have no target")
	}
	if e.Status(3, 5) != formats.TilePlain || e.Cost(3, 5) != PlainCost {
		t.Errorf("expected plain tile with cost 1, got %v/%d", e.Status(3, 5), e.Cost(3, 5))
	}
}

func TestEnvironment_OffGrid(t *testing.T) {
	e := New(3, 3)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if e.Status(p[0], p[1]) != formats.TileImpassable {
			t.Errorf("(%d,%d) should be impassable", p[0], p[1])
		}
		if e.Cost(p[0], p[1]) != formats.MaxCost {
			t.Errorf("(%d,%d) should cost MaxCost, got %d", p[0], p[1], e.Cost(p[0], p[1]))
		}
		if e.IsTraversable(p[0], p[1]) {
			t.Errorf("(%d,%d) should not be traversable", p[0], p[1])
		}
	}
}

func TestEnvironment_HeavyTerrainPolicy(t *testing.T) {
	strict := New(2, 2)
	strict.SetTile(0, 1, formats.TilePuddle, PuddleCost)
	if strict.IsTraversable(0, 1) {
		t.Error("puddle should be impassable under the default policy")
	}
	if strict.Cost(0, 1) != PuddleCost {
		t.Errorf("puddle keeps its cost, got %d", strict.Cost(0, 1))
	}

	wading := New(2, 2, WithHeavyTerrain(HeavyTerrainEnterable))
	wading.SetTile(0, 1, formats.TilePuddle, 40)
	if !wading.IsTraversable(0, 1) {
		t.Error("puddle should be enterable under HeavyTerrainEnterable")
	}

	wading.SetTile(1, 1, formats.TileImpassable, 1)
	if wading.IsTraversable(1, 1) {
		t.Error("impassable tile must never be traversable")
	}
}

func TestEnvironment_MountainIsEnterable(t *testing.T) {
	e := New(2, 2)
	e.SetTile(1, 0, formats.TileMountain, MountainCost)
	if !e.IsTraversable(1, 0) {
		t.Error("mountain should be traversable")
	}
	if e.Cost(1, 0) != MountainCost {
		t.Errorf("expected cost %d, got %d", MountainCost, e.Cost(1, 0))
	}
}

func TestEnvironment_SetTarget(t *testing.T) {
	e := New(5, 5)

	e.SetTarget(2, 3)
	row, col, ok := e.GoalLocation()
	if !ok || row != 2 || col != 3 {
		t.Fatalf("expected goal (2,3), got (%d,%d) ok=%v", row, col, ok)
	}
	if !e.GoalReached(2, 3) || e.GoalReached(0, 0) {
		t.Error("GoalReached disagrees with target")
	}

	// Moving the target resets the old tile.
	e.SetTarget(4, 4)
	if e.Status(2, 3) != formats.TilePlain {
		t.Errorf("old target should be plain, got %v", e.Status(2, 3))
	}
	if e.Status(4, 4) != formats.TileTarget {
		t.Errorf("new target missing, got %v", e.Status(4, 4))
	}

	// Out of bounds is ignored.
	e.SetTarget(9, 9)
	if row, col, _ := e.GoalLocation(); row != 4 || col != 4 {
		t.Errorf("out of bounds SetTarget moved goal to (%d,%d)", row, col)
	}
}

func TestEnvironment_SetTileOverTarget(t *testing.T) {
	e := New(3, 3)
	e.SetTarget(1, 1)
	e.SetTile(1, 1, formats.TileImpassable, PuddleCost)

	if _, _, ok := e.GoalLocation(); ok {
		t.Error("overwriting the target should clear it")
	}

	e.SetTile(2, 2, formats.TileTarget, 1)
	if row, col, ok := e.GoalLocation(); !ok || row != 2 || col != 2 {
		t.Errorf("placing a target tile should set the goal, got (%d,%d) ok=%v", row, col, ok)
	}
}

func TestEnvironment_SetTileClampsCost(t *testing.T) {
	e := New(2, 2)

	e.SetTile(0, 0, formats.TileMountain, 1<<32+1)
	if e.Cost(0, 0) != formats.MaxCost {
		t.Errorf("expected cost clamped to %d, got %d", formats.MaxCost, e.Cost(0, 0))
	}

	e.SetTile(0, 1, formats.TileMountain, -7)
	if e.Cost(0, 1) != 0 {
		t.Errorf("expected negative cost clamped to 0, got %d", e.Cost(0, 1))
	}
}

func TestNewLayout(t *testing.T) {
	open := NewLayout("", DefaultRows, DefaultCols)
	if open.NumTiles() != 100 {
		t.Errorf("open room should have 100 tiles, got %d", open.NumTiles())
	}

	corridor := NewLayout("1", DefaultRows, DefaultCols)
	if corridor.Status(1, 0) != formats.TileMountain {
		t.Errorf("expected mountain at (1,0), got %v", corridor.Status(1, 0))
	}
	for col := 1; col < 9; col++ {
		if corridor.Status(1, col) != formats.TilePuddle || corridor.Status(8, col) != formats.TilePuddle {
			t.Errorf("expected puddle band at column %d", col)
		}
	}
	if corridor.Status(3, 3) != formats.TilePuddle || corridor.Status(6, 2) != formats.TilePuddle {
		t.Error("expected inner puddle bands")
	}

	wall := NewLayout("2", DefaultRows, DefaultCols)
	for row := 1; row < 9; row++ {
		if wall.IsTraversable(row, 4) {
			t.Errorf("wall should block (%d,4)", row)
		}
	}
	if !wall.IsTraversable(0, 4) || !wall.IsTraversable(9, 4) {
		t.Error("wall should leave gaps at both ends")
	}

	fallback := NewLayout("unknown", DefaultRows, DefaultCols)
	if fallback.Status(1, 0) != formats.TileMountain {
		t.Error("unknown layout should fall back to layout 1")
	}
}

func TestLayouts(t *testing.T) {
	names := Layouts()
	if len(names) != 3 {
		t.Fatalf("expected 3 layouts, got %v", names)
	}
	if names[0] != "1" || names[1] != "2" || names[2] != LayoutOpen {
		t.Errorf("unexpected layout order: %v", names)
	}
}

func TestParseLayout_Map(t *testing.T) {
	data := []byte(`
name: tiny
map:
  - ". . x"
  - ". m ."
  - "w . G"
`)
	l, err := ParseLayout(data)
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	e, err := l.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if e.Rows() != 3 || e.Cols() != 3 {
		t.Fatalf("expected 3x3, got %dx%d", e.Rows(), e.Cols())
	}
	if e.Status(0, 2) != formats.TileImpassable {
		t.Errorf("expected wall at (0,2), got %v", e.Status(0, 2))
	}
	if e.Cost(1, 1) != MountainCost {
		t.Errorf("expected mountain cost, got %d", e.Cost(1, 1))
	}
	if row, col, ok := e.GoalLocation(); !ok || row != 2 || col != 2 {
		t.Errorf("expected goal (2,2), got (%d,%d)", row, col)
	}
}

func TestParseLayout_Runs(t *testing.T) {
	data := []byte(`
rows: 5
cols: 5
base: open
tiles:
  - {status: impassable, row: 2, col: 0, length: 4}
  - {status: mountain, row: 0, col: 4, length: 3, vertical: true, cost: 9}
goal: {row: 4, col: 0}
`)
	l, err := ParseLayout(data)
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	e, err := l.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for col := 0; col < 4; col++ {
		if e.IsTraversable(2, col) {
			t.Errorf("(2,%d) should be blocked", col)
		}
	}
	if !e.IsTraversable(2, 4) {
		t.Error("(2,4) should be the gap")
	}
	for row := 0; row < 3; row++ {
		if e.Cost(row, 4) != 9 {
			t.Errorf("(%d,4) expected cost 9, got %d", row, e.Cost(row, 4))
		}
	}
	if !e.GoalReached(4, 0) {
		t.Error("expected goal at (4,0)")
	}
}

func TestParseLayout_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no size", "name: empty\n"},
		{"ragged map", "map:\n  - \". .\"\n  - \".\"\n"},
		{"bad symbol", "map:\n  - \". q\"\n"},
		{"bad status", "rows: 2\ncols: 2\ntiles:\n  - {status: lava, row: 0, col: 0}\n"},
		{"off-grid run", "rows: 2\ncols: 2\ntiles:\n  - {status: plain, row: 5, col: 0}\n"},
		{"negative cost", "rows: 2\ncols: 2\ntiles:\n  - {status: plain, row: 0, col: 0, cost: -1}\n"},
		{"cost above max", "rows: 2\ncols: 2\ntiles:\n  - {status: mountain, row: 0, col: 0, cost: 100000001}\n"},
		{"cost wraps int32", "rows: 2\ncols: 2\ntiles:\n  - {status: mountain, row: 0, col: 0, cost: 4294967297}\n"},
		{"off-grid goal", "rows: 2\ncols: 2\ngoal: {row: 2, col: 2}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ParseLayout([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ParseLayout failed: %v", err)
			}
			if _, err := l.Build(); !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("expected ErrInvalidLayout, got %v", err)
			}
		})
	}

	if _, err := ParseLayout([]byte("rows: [oops")); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("expected ErrInvalidLayout for broken YAML, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "room.yaml")
	if err := os.WriteFile(yamlPath, []byte("rows: 3\ncols: 4\ngoal: {row: 2, col: 3}\n"), 0644); err != nil {
		t.Fatalf("failed to write layout: %v", err)
	}
	e, err := LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile(yaml) failed: %v", err)
	}
	if e.Rows() != 3 || e.Cols() != 4 || !e.GoalReached(2, 3) {
		t.Errorf("unexpected environment from yaml: %dx%d", e.Rows(), e.Cols())
	}

	// Export to a binary map and load it back.
	src := NewLayout("2", 6, 6, WithHeavyTerrain(HeavyTerrainEnterable))
	src.SetTarget(5, 5)
	grdPath := filepath.Join(dir, "room.grd")
	if err := formats.WriteGridFile(grdPath, src.Grid()); err != nil {
		t.Fatalf("WriteGridFile failed: %v", err)
	}
	loaded, err := LoadFile(grdPath)
	if err != nil {
		t.Fatalf("LoadFile(grd) failed: %v", err)
	}
	if !loaded.GoalReached(5, 5) {
		t.Error("goal lost in binary export")
	}
	if loaded.Status(2, 2) != formats.TilePuddle {
		t.Errorf("expected puddle at (2,2), got %v", loaded.Status(2, 2))
	}
	if loaded.HeavyTerrain() != HeavyTerrainImpassable {
		t.Error("policy is not part of the map file")
	}

	bad := &formats.Grid{
		Rows:  1,
		Cols:  3,
		Tiles: []formats.Tile{{Status: formats.TilePlain, Cost: 1}, {Status: 9, Cost: -50}, {Status: formats.TileTarget, Cost: 1}},
	}
	badPath := filepath.Join(dir, "bad.grd")
	if err := formats.WriteGridFile(badPath, bad); err != nil {
		t.Fatalf("WriteGridFile failed: %v", err)
	}
	if _, err := LoadFile(badPath); !errors.Is(err, formats.ErrInvalidGridTile) {
		t.Errorf("expected ErrInvalidGridTile for corrupt tile, got %v", err)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
