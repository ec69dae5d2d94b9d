package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"
)

// createTestGrid creates a minimal valid grid map for testing.
func createTestGrid(rows, cols uint32, statuses []TileStatus) []byte {
	buf := new(bytes.Buffer)

	buf.WriteString("GRDM")
	buf.WriteByte(0) // minor
	buf.WriteByte(1) // major

	binary.Write(buf, binary.LittleEndian, rows)
	binary.Write(buf, binary.LittleEndian, cols)

	count := int(rows * cols)
	for i := 0; i < count; i++ {
		status := TilePlain
		if i < len(statuses) {
			status = statuses[i]
		}
		binary.Write(buf, binary.LittleEndian, uint32(status))
		binary.Write(buf, binary.LittleEndian, int32(i+1))
	}

	return buf.Bytes()
}

func TestParseGrid_ValidFile(t *testing.T) {
	data := createTestGrid(3, 4, nil)

	grid, err := ParseGrid(data)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}

	if grid.Version.Major != 1 || grid.Version.Minor != 0 {
		t.Errorf("expected version 1.0, got %s", grid.Version)
	}
	if grid.Rows != 3 {
		t.Errorf("expected 3 rows, got %d", grid.Rows)
	}
	if grid.Cols != 4 {
		t.Errorf("expected 4 cols, got %d", grid.Cols)
	}
	if len(grid.Tiles) != 12 {
		t.Errorf("expected 12 tiles, got %d", len(grid.Tiles))
	}
	if grid.Tiles[11].Cost != 12 {
		t.Errorf("expected last tile cost 12, got %d", grid.Tiles[11].Cost)
	}
}

func TestParseGrid_Statuses(t *testing.T) {
	statuses := []TileStatus{
		TilePlain,
		TilePuddle,
		TileMountain,
		TileTarget,
		TileImpassable,
		TilePlain,
	}
	grid, err := ParseGrid(createTestGrid(2, 3, statuses))
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}

	for i, expected := range statuses {
		if grid.Tiles[i].Status != expected {
			t.Errorf("tile %d: expected status %v, got %v", i, expected, grid.Tiles[i].Status)
		}
	}
}

func TestParseGrid_InvalidMagic(t *testing.T) {
	data := []byte("XXXX\x00\x01\x04\x00\x00\x00\x04\x00\x00\x00")

	_, err := ParseGrid(data)
	if !errors.Is(err, ErrInvalidGridMagic) {
		t.Errorf("expected ErrInvalidGridMagic, got %v", err)
	}
}

func TestParseGrid_UnsupportedVersion(t *testing.T) {
	data := createTestGrid(1, 1, nil)
	data[5] = 7

	_, err := ParseGrid(data)
	if !errors.Is(err, ErrUnsupportedGridVersion) {
		t.Errorf("expected ErrUnsupportedGridVersion, got %v", err)
	}
}

func TestParseGrid_TruncatedData(t *testing.T) {
	if _, err := ParseGrid([]byte("GRDM")); !errors.Is(err, ErrTruncatedGridData) {
		t.Errorf("expected ErrTruncatedGridData, got %v", err)
	}

	data := createTestGrid(2, 2, nil)
	if _, err := ParseGrid(data[:len(data)-3]); !errors.Is(err, ErrTruncatedGridData) {
		t.Errorf("expected ErrTruncatedGridData for short tile data, got %v", err)
	}
}

func TestParseGrid_InvalidDimensions(t *testing.T) {
	if _, err := ParseGrid(createTestGrid(0, 5, nil)); err == nil {
		t.Error("expected error for zero rows")
	}
}

func TestParseGrid_InvalidTiles(t *testing.T) {
	tests := []struct {
		name string
		tile Tile
	}{
		{"unknown status", Tile{Status: TileStatus(9), Cost: 1}},
		{"status just past impassable", Tile{Status: TileImpassable + 1, Cost: 1}},
		{"negative cost", Tile{Status: TilePlain, Cost: -50}},
		{"cost above max", Tile{Status: TileMountain, Cost: MaxCost + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := &Grid{
				Rows:  1,
				Cols:  3,
				Tiles: []Tile{{Status: TilePlain, Cost: 1}, tt.tile, {Status: TileTarget, Cost: 1}},
			}
			_, err := ParseGrid(EncodeGrid(grid))
			if !errors.Is(err, ErrInvalidGridTile) {
				t.Errorf("expected ErrInvalidGridTile, got %v", err)
			}
		})
	}

	// Boundary values are accepted.
	grid := &Grid{
		Rows:  1,
		Cols:  2,
		Tiles: []Tile{{Status: TilePlain, Cost: 0}, {Status: TileImpassable, Cost: MaxCost}},
	}
	if _, err := ParseGrid(EncodeGrid(grid)); err != nil {
		t.Errorf("expected boundary tiles to parse, got %v", err)
	}
}

func TestEncodeGrid_ParsesBack(t *testing.T) {
	grid := &Grid{
		Rows: 2,
		Cols: 2,
		Tiles: []Tile{
			{Status: TilePlain, Cost: 1},
			{Status: TileMountain, Cost: 5},
			{Status: TilePuddle, Cost: MaxCost},
			{Status: TileTarget, Cost: 1},
		},
	}

	path := filepath.Join(t.TempDir(), "world.grd")
	if err := WriteGridFile(path, grid); err != nil {
		t.Fatalf("WriteGridFile failed: %v", err)
	}

	parsed, err := ParseGridFile(path)
	if err != nil {
		t.Fatalf("ParseGridFile failed: %v", err)
	}
	if parsed.Version != CurrentGridVersion {
		t.Errorf("expected version %s, got %s", CurrentGridVersion, parsed.Version)
	}
	if tile := parsed.GetTile(1, 0); tile == nil || tile.Status != TilePuddle || tile.Cost != MaxCost {
		t.Errorf("unexpected tile at (1,0): %+v", tile)
	}
}

func TestParseGridFile_Missing(t *testing.T) {
	if _, err := ParseGridFile("/nonexistent/world.grd"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGrid_GetTile(t *testing.T) {
	grid, _ := ParseGrid(createTestGrid(4, 4, nil))

	if grid.GetTile(2, 3) == nil {
		t.Error("GetTile(2, 3) returned nil for valid coordinates")
	}
	if grid.GetTile(-1, 0) != nil {
		t.Error("GetTile(-1, 0) should return nil")
	}
	if grid.GetTile(0, -1) != nil {
		t.Error("GetTile(0, -1) should return nil")
	}
	if grid.GetTile(4, 0) != nil {
		t.Error("GetTile(4, 0) should return nil")
	}
	if grid.GetTile(0, 4) != nil {
		t.Error("GetTile(0, 4) should return nil")
	}
}

func TestGrid_CountByStatus(t *testing.T) {
	statuses := []TileStatus{
		TilePlain, TilePlain, TilePlain,
		TileImpassable, TileImpassable,
		TileTarget,
	}
	grid, _ := ParseGrid(createTestGrid(2, 3, statuses))

	counts := grid.CountByStatus()
	if counts[TilePlain] != 3 {
		t.Errorf("expected 3 plain, got %d", counts[TilePlain])
	}
	if counts[TileImpassable] != 2 {
		t.Errorf("expected 2 impassable, got %d", counts[TileImpassable])
	}
	if counts[TileTarget] != 1 {
		t.Errorf("expected 1 target, got %d", counts[TileTarget])
	}
}

func TestGrid_GetCostRange(t *testing.T) {
	grid, _ := ParseGrid(createTestGrid(2, 3, nil))

	min, max := grid.GetCostRange()
	if min != 1 || max != 6 {
		t.Errorf("expected range [1, 6], got [%d, %d]", min, max)
	}

	empty := &Grid{}
	if min, max := empty.GetCostRange(); min != 0 || max != 0 {
		t.Errorf("expected [0, 0] for empty grid, got [%d, %d]", min, max)
	}
}

func TestTileStatus_Predicates(t *testing.T) {
	tests := []struct {
		status  TileStatus
		blocked bool
		heavy   bool
		symbol  byte
	}{
		{TilePlain, false, false, '.'},
		{TilePuddle, false, true, 'w'},
		{TileMountain, false, false, 'm'},
		{TileTarget, false, false, 'G'},
		{TileImpassable, true, false, 'x'},
	}

	for _, tc := range tests {
		if tc.status.IsBlocked() != tc.blocked {
			t.Errorf("%v.IsBlocked() = %v, expected %v", tc.status, tc.status.IsBlocked(), tc.blocked)
		}
		if tc.status.IsHeavy() != tc.heavy {
			t.Errorf("%v.IsHeavy() = %v, expected %v", tc.status, tc.status.IsHeavy(), tc.heavy)
		}
		if tc.status.Symbol() != tc.symbol {
			t.Errorf("%v.Symbol() = %q, expected %q", tc.status, tc.status.Symbol(), tc.symbol)
		}
	}
}

func TestTileStatus_String(t *testing.T) {
	tests := []struct {
		status   TileStatus
		expected string
	}{
		{TilePlain, "Plain"},
		{TilePuddle, "Puddle"},
		{TileMountain, "Mountain"},
		{TileTarget, "Target"},
		{TileImpassable, "Impassable"},
		{TileStatus(99), "Unknown(99)"},
	}

	for _, tc := range tests {
		if tc.status.String() != tc.expected {
			t.Errorf("%d.String() = %q, expected %q", tc.status, tc.status.String(), tc.expected)
		}
		if tc.status <= TileImpassable {
			parsed, err := ParseTileStatus(tc.expected)
			if err != nil || parsed != tc.status {
				t.Errorf("ParseTileStatus(%q) = %v, %v", tc.expected, parsed, err)
			}
		}
	}

	if _, err := ParseTileStatus("lava"); err == nil {
		t.Error("expected error for unknown status")
	}
}
