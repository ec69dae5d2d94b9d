// Package formats provides tile definitions and parsers for grid world map files.
package formats

// Note: GRDM (grid map) is fully implemented in grid.go
