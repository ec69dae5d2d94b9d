package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// Grid format errors.
var (
	ErrInvalidGridMagic       = errors.New("invalid grid magic: expected 'GRDM'")
	ErrUnsupportedGridVersion = errors.New("unsupported grid version")
	ErrTruncatedGridData      = errors.New("truncated grid data")
	ErrInvalidGridTile        = errors.New("invalid grid tile")
)

// MaxCost is the cost reported for cells outside the grid.
const MaxCost = 100000000

// gridMagic identifies a binary grid map.
const gridMagic = "GRDM"

// GridVersion represents the grid file version.
type GridVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v GridVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentGridVersion is written by EncodeGrid.
var CurrentGridVersion = GridVersion{Major: 1, Minor: 0}

// TileStatus represents the terrain kind of a tile.
type TileStatus uint32

// Tile status constants.
const (
	TilePlain      TileStatus = 0 // Open ground
	TilePuddle     TileStatus = 1 // Heavy terrain, very high cost
	TileMountain   TileStatus = 2 // Obstacle terrain, enterable at extra cost
	TileTarget     TileStatus = 3 // Goal tile
	TileImpassable TileStatus = 4 // Wall
)

// String returns a human-readable status name.
func (s TileStatus) String() string {
	switch s {
	case TilePlain:
		return "Plain"
	case TilePuddle:
		return "Puddle"
	case TileMountain:
		return "Mountain"
	case TileTarget:
		return "Target"
	case TileImpassable:
		return "Impassable"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Symbol returns the single character used in text dumps.
func (s TileStatus) Symbol() byte {
	switch s {
	case TileImpassable:
		return 'x'
	case TileMountain:
		return 'm'
	case TilePuddle:
		return 'w'
	case TileTarget:
		return 'G'
	default:
		return '.'
	}
}

// IsBlocked returns true if the tile can never be entered.
func (s TileStatus) IsBlocked() bool {
	return s == TileImpassable
}

// IsHeavy returns true for heavy terrain.
func (s TileStatus) IsHeavy() bool {
	return s == TilePuddle
}

// ParseTileStatus converts a status name (case-sensitive, as produced by
// String) or a single symbol into a TileStatus.
func ParseTileStatus(name string) (TileStatus, error) {
	switch name {
	case "Plain", "plain", ".":
		return TilePlain, nil
	case "Puddle", "puddle", "w":
		return TilePuddle, nil
	case "Mountain", "mountain", "m":
		return TileMountain, nil
	case "Target", "target", "G":
		return TileTarget, nil
	case "Impassable", "impassable", "x":
		return TileImpassable, nil
	}
	return 0, fmt.Errorf("unknown tile status %q", name)
}

// Tile represents a single cell in the grid.
type Tile struct {
	Status TileStatus
	Cost   int32
}

// Grid represents a parsed grid map file. Cells are stored row-major.
type Grid struct {
	Version GridVersion
	Rows    uint32
	Cols    uint32
	Tiles   []Tile
}

// GetTile returns the tile at the given coordinates.
// Returns nil if coordinates are out of bounds.
func (g *Grid) GetTile(row, col int) *Tile {
	if row < 0 || col < 0 || row >= int(g.Rows) || col >= int(g.Cols) {
		return nil
	}
	return &g.Tiles[row*int(g.Cols)+col]
}

// ParseGrid parses a grid map from raw bytes.
func ParseGrid(data []byte) (*Grid, error) {
	if len(data) < 14 {
		return nil, ErrTruncatedGridData
	}

	if string(data[0:4]) != gridMagic {
		return nil, ErrInvalidGridMagic
	}

	// Version is stored as [minor, major]
	version := GridVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGridVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var rows, cols uint32
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return nil, fmt.Errorf("%w: reading rows", ErrTruncatedGridData)
	}
	if err := binary.Read(r, binary.LittleEndian, &cols); err != nil {
		return nil, fmt.Errorf("%w: reading cols", ErrTruncatedGridData)
	}

	if rows == 0 || cols == 0 || rows > 4096 || cols > 4096 {
		return nil, fmt.Errorf("invalid grid dimensions: %dx%d", rows, cols)
	}

	count := int(rows * cols)
	grid := &Grid{
		Version: version,
		Rows:    rows,
		Cols:    cols,
		Tiles:   make([]Tile, count),
	}

	for i := 0; i < count; i++ {
		tile, err := parseTile(r)
		if err != nil {
			return nil, fmt.Errorf("parsing tile %d: %w", i, err)
		}
		grid.Tiles[i] = tile
	}

	return grid, nil
}

func parseTile(r *bytes.Reader) (Tile, error) {
	var tile Tile
	if err := binary.Read(r, binary.LittleEndian, &tile.Status); err != nil {
		return Tile{}, fmt.Errorf("%w: reading status", ErrTruncatedGridData)
	}
	if err := binary.Read(r, binary.LittleEndian, &tile.Cost); err != nil {
		return Tile{}, fmt.Errorf("%w: reading cost", ErrTruncatedGridData)
	}
	if tile.Status > TileImpassable {
		return Tile{}, fmt.Errorf("%w: unknown status %d", ErrInvalidGridTile, uint32(tile.Status))
	}
	if tile.Cost < 0 || tile.Cost > MaxCost {
		return Tile{}, fmt.Errorf("%w: cost %d outside 0..%d", ErrInvalidGridTile, tile.Cost, MaxCost)
	}
	return tile, nil
}

// ParseGridFile parses a grid map from disk.
func ParseGridFile(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grid file: %w", err)
	}
	return ParseGrid(data)
}

// EncodeGrid serializes g in the current format version.
func EncodeGrid(g *Grid) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(gridMagic)
	buf.WriteByte(CurrentGridVersion.Minor)
	buf.WriteByte(CurrentGridVersion.Major)

	// bytes.Buffer writes never fail.
	_ = binary.Write(buf, binary.LittleEndian, g.Rows)
	_ = binary.Write(buf, binary.LittleEndian, g.Cols)
	for _, t := range g.Tiles {
		_ = binary.Write(buf, binary.LittleEndian, t.Status)
		_ = binary.Write(buf, binary.LittleEndian, t.Cost)
	}
	return buf.Bytes()
}

// WriteGridFile encodes g and writes it to path.
func WriteGridFile(path string, g *Grid) error {
	return os.WriteFile(path, EncodeGrid(g), 0644)
}

// CountByStatus returns the count of tiles for each status.
func (g *Grid) CountByStatus() map[TileStatus]int {
	counts := make(map[TileStatus]int)
	for _, t := range g.Tiles {
		counts[t.Status]++
	}
	return counts
}

// GetCostRange returns the minimum and maximum tile cost in the map.
func (g *Grid) GetCostRange() (min, max int32) {
	if len(g.Tiles) == 0 {
		return 0, 0
	}

	min = g.Tiles[0].Cost
	max = g.Tiles[0].Cost
	for _, t := range g.Tiles {
		if t.Cost < min {
			min = t.Cost
		}
		if t.Cost > max {
			max = t.Cost
		}
	}
	return min, max
}
