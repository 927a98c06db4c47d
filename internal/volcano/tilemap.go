package volcano

import (
	"github.com/xtding233/volcano-backend/internal/mapdata"
)

// TileGrid is a decoded layout indexed [row][col].
type TileGrid [mapdata.GridSize][mapdata.GridSize]mapdata.Tile

// At returns the tile at column x, row y. Outside the grid reads as Wall.
func (g *TileGrid) At(x, y int) mapdata.Tile {
	if x < 0 || y < 0 || x >= mapdata.GridSize || y >= mapdata.GridSize {
		return mapdata.Wall
	}
	return g[y][x]
}

// Count returns how many cells hold t.
func (g *TileGrid) Count(t mapdata.Tile) int {
	n := 0
	for y := range g {
		for x := range g[y] {
			if g[y][x] == t {
				n++
			}
		}
	}
	return n
}

// Rows renders the grid as one string per row, one byte per tile ('0'..'7').
func (g *TileGrid) Rows() []string {
	out := make([]string, mapdata.GridSize)
	var line [mapdata.GridSize]byte
	for y := range g {
		for x, t := range g[y] {
			line[x] = '0' + byte(t)
		}
		out[y] = string(line[:])
	}
	return out
}

// noFlipLayout reports the layouts the game never mirrors: the entrance and the rest stop.
func noFlipLayout(layout int) bool {
	return layout == 0 || layout == 31
}

// DecodeTilemap copies one layout out of the tables, mirroring columns when flipX is set.
// Layouts 0 and 31 are never mirrored.
func DecodeTilemap(t *mapdata.Tables, layout int, flipX bool) (TileGrid, error) {
	var g TileGrid
	block, err := t.Layout(layout)
	if err != nil {
		return g, err
	}
	if noFlipLayout(layout) {
		flipX = false
	}
	for y := 0; y < mapdata.GridSize; y++ {
		row := block[y*mapdata.GridSize : (y+1)*mapdata.GridSize]
		for x, b := range row {
			if flipX {
				g[y][mapdata.GridSize-1-x] = mapdata.Tile(b)
			} else {
				g[y][x] = mapdata.Tile(b)
			}
		}
	}
	return g, nil
}
