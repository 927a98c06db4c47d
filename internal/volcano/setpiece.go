package volcano

import (
	"github.com/xtding233/volcano-backend/internal/logger"
	"github.com/xtding233/volcano-backend/internal/mapdata"
)

// SetPiece is one square of set-piece tiles found on a floor.
// Size is the size class the game uses; Measured is the side length actually found.
type SetPiece struct {
	X        int   `json:"x"`
	Y        int   `json:"y"`
	Size     int32 `json:"size"`
	Measured int   `json:"measured"`
}

// classifySize maps a measured side length onto the largest size class not above it, or 3.
func classifySize(measured int) (size int32, exact bool) {
	for _, c := range mapdata.SizeClasses {
		if measured >= int(c) {
			return c, measured == int(c)
		}
	}
	return 3, false
}

// findSetPieces scans columns outer, rows inner, the order the game visits tiles in.
// Each square grows while the tiles j steps right and j steps down are unclaimed set-piece tiles.
// Claimed tiles are tracked in a mask so the grid itself is untouched.
func findSetPieces(g *TileGrid) []SetPiece {
	var claimed [mapdata.GridSize][mapdata.GridSize]bool
	open := func(x, y int) bool {
		return g.At(x, y) == mapdata.SetPiece && !claimed[y][x]
	}

	var pieces []SetPiece
	for x := 0; x < mapdata.GridSize; x++ {
		for y := 0; y < mapdata.GridSize; y++ {
			if !open(x, y) {
				continue
			}
			j := 0
			for j < mapdata.GridSize && open(x+j, y) && open(x, y+j) {
				j++
			}
			for yy := y; yy < y+j; yy++ {
				for xx := x; xx < x+j; xx++ {
					claimed[yy][xx] = true
				}
			}
			size, _ := classifySize(j)
			pieces = append(pieces, SetPiece{X: x, Y: y, Size: size, Measured: j})
		}
	}
	return pieces
}

// paintSetPieces clears every measured footprint to floor, then paints each size-class footprint
// back as set piece. For well-formed tables the two footprints coincide.
func paintSetPieces(g *TileGrid, pieces []SetPiece) {
	fill := func(x, y, side int, t mapdata.Tile) {
		for yy := y; yy < y+side && yy < mapdata.GridSize; yy++ {
			for xx := x; xx < x+side && xx < mapdata.GridSize; xx++ {
				g[yy][xx] = t
			}
		}
	}
	for _, p := range pieces {
		fill(p.X, p.Y, p.Measured, mapdata.Floor)
	}
	for _, p := range pieces {
		fill(p.X, p.Y, int(p.Size), mapdata.SetPiece)
	}
}

// warnMalformed logs pieces whose measured size is not a size class and reports whether any were found.
func warnMalformed(layout int, pieces []SetPiece) bool {
	malformed := false
	for _, p := range pieces {
		if _, exact := classifySize(p.Measured); !exact {
			logger.Warning("malformed set piece",
				"layout", layout, "x", p.X, "y", p.Y, "size", p.Measured, "using", p.Size)
			malformed = true
		}
	}
	return malformed
}
